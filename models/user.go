package models

import "time"

// User roles.
const (
	RoleStudent = "student"
	RoleIntima  = "intima"
)

// User is an account keyed by student ID. The ID doubles as the login
// business key and may be changed through the admin update endpoint.
type User struct {
	ID          string     `gorm:"primaryKey;column:id;size:50" json:"id"`
	Name        string     `gorm:"column:name;size:255" json:"name"`
	Email       string     `gorm:"column:email;size:255;unique" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	Role        string     `gorm:"column:role;size:20" json:"role"`
	Affiliates  StringList `gorm:"column:affiliates;type:json" json:"affiliates"`
	Permissions StringList `gorm:"column:permissions;type:json" json:"permissions"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleIntima
}
