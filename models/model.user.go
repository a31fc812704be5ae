package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/uptrace/bun"
)

type (
	Gender     string
	Department string
)

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"

	DepartmentIT       Department = "IT"
	DepartmentHSE      Department = "HSE"
	DepartmentHRGA     Department = "HRGA"
	DepartmentProduksi Department = "PRODUKSI"
	DepartmentPlan     Department = "PLAN"
)

var (
	genders     = []Gender{GenderMale, GenderFemale}
	departments = []Department{DepartmentIT, DepartmentHSE, DepartmentHRGA, DepartmentProduksi, DepartmentPlan}
)

func (g Gender) Values() []string {
	return lo.Map(genders, func(item Gender, _ int) string { return string(item) })
}

func (g Gender) IsValid() bool {
	return lo.Contains(genders, g)
}

func (d Department) Values() []string {
	return lo.Map(departments, func(item Department, _ int) string { return string(item) })
}

func (d Department) IsValid() bool {
	return lo.Contains(departments, d)
}

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64      `json:"id" bun:"id,pk,autoincrement"`
	Name          string     `json:"name" bun:"name,notnull"`
	Email         string     `json:"email" bun:"email,notnull"`
	Gender        Gender     `json:"gender" bun:"gender,notnull"`
	Department    Department `json:"departement" bun:"departement,notnull"`
	Image         string     `json:"image" bun:"image,notnull"`
	CreatedAt     time.Time  `json:"createdAt" bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `json:"updatedAt" bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeAppendModelHook = (*User)(nil)

// BeforeAppendModel stamps the timestamps and refuses rows whose enum columns
// fall outside the definitions above.
func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		now := time.Now().UTC()
		u.CreatedAt = now
		u.UpdatedAt = now

	case *bun.UpdateQuery:
		u.UpdatedAt = time.Now().UTC()

	default:
		return nil
	}

	return u.checkConstraints()
}

func (u *User) checkConstraints() error {
	violations := []FieldViolation{}

	if !u.Gender.IsValid() {
		violations = append(violations, enumViolation("gender", string(u.Gender), u.Gender.Values()))
	}

	if !u.Department.IsValid() {
		violations = append(violations, enumViolation("departement", string(u.Department), u.Department.Values()))
	}

	if len(violations) > 0 {
		return &ConstraintError{Errors: violations}
	}

	return nil
}

func enumViolation(path, value string, values []string) FieldViolation {
	return FieldViolation{
		Message: fmt.Sprintf("%s must be one of [%s]", path, strings.Join(values, ", ")),
		Type:    "enum violation",
		Path:    path,
		Value:   value,
	}
}

// UserFields lists the writable user fields in validation order.
var UserFields = []string{"name", "email", "gender", "departement", "image"}

// UserRequest is the full replacement payload accepted by create and update.
// Pointer fields tell an absent key apart from an empty one.
type UserRequest struct {
	Name       *string     `json:"name" validate:"required,notempty,min=3,max=35"`
	Email      *string     `json:"email" validate:"required,notempty,email"`
	Gender     *Gender     `json:"gender" validate:"required,notempty,enum"`
	Department *Department `json:"departement" validate:"required,notempty,enum"`
	Image      *string     `json:"image" validate:"required,notempty"`
}

func NewUserRequest(fields map[string]string) *UserRequest {
	req := new(UserRequest)

	for key, value := range fields {
		value := value

		switch key {
		case "name":
			req.Name = &value
		case "email":
			req.Email = &value
		case "gender":
			gender := Gender(value)
			req.Gender = &gender
		case "departement":
			department := Department(value)
			req.Department = &department
		case "image":
			req.Image = &value
		}
	}

	return req
}

// Apply overwrites every writable field of u. Absent fields become zero values,
// callers validate first.
func (r *UserRequest) Apply(u *User) {
	u.Name = lo.FromPtr(r.Name)
	u.Email = lo.FromPtr(r.Email)
	u.Gender = lo.FromPtr(r.Gender)
	u.Department = lo.FromPtr(r.Department)
	u.Image = lo.FromPtr(r.Image)
}
