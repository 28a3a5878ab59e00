package models

// User represents a staff account that records and manages complaints.
// The username is the natural key: accounts are created once at provisioning
// time and never deleted in normal operation.
type User struct {
	Username     string `gorm:"primaryKey" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"full_name"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
