package entity

type UserRole string

const (
	RoleLearner UserRole = "learner"
	RoleTutor   UserRole = "tutor"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	Base
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
