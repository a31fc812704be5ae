package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/angkomuhtar/simple-api-express/models"
	"github.com/angkomuhtar/simple-api-express/packages"
)

var ErrUserNotFound = errors.New("User not found")

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type service struct {
	db     *bun.DB
	broker packages.IKafka
	topic  string
}

func NewService(db *bun.DB, broker packages.IKafka, topic string) IService {
	return &service{db: db, broker: broker, topic: topic}
}

func (s *service) ListUsers(ctx context.Context, name string) ([]models.User, error) {
	users := []models.User{}

	query := s.db.NewSelect().Model(&users).Order("u.id ASC")
	if name != "" {
		// fold both sides in SQL
		query = query.Where("LOWER(u.name) LIKE LOWER(?) ESCAPE '!'", "%"+likeEscaper.Replace(name)+"%")
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	return users, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)

	err := s.db.NewSelect().Model(user).Where("u.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}

	return user, nil
}

func (s *service) CreateUser(ctx context.Context, req *models.UserRequest) (*models.User, error) {
	user := new(models.User)
	req.Apply(user)

	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.publish(models.UserCreated, user)

	return user, nil
}

func (s *service) UpdateUser(ctx context.Context, user *models.User, req *models.UserRequest) (*models.User, error) {
	updated := *user
	req.Apply(&updated)

	result, err := s.db.NewUpdate().Model(&updated).WherePK().Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", user.ID, err)
	}

	if err := expectRow(result); err != nil {
		return nil, err
	}

	s.publish(models.UserUpdated, &updated)

	return &updated, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	result, err := s.db.NewDelete().Model(user).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	if err := expectRow(result); err != nil {
		return err
	}

	s.publish(models.UserDeleted, user)

	return nil
}

// expectRow maps a write that touched nothing, a row removed since it was
// loaded, to ErrUserNotFound.
func expectRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// publish never fails the caller, the write already happened.
func (s *service) publish(eventType models.EventType, user *models.User) {
	if err := s.broker.Publisher(s.topic, user.ID, models.NewUserEvent(eventType, *user)); err != nil {
		packages.Logrus("error", "Publish %s event for user %d is error: %v", eventType, user.ID, err)
	}
}
