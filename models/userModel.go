package models

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	Model    `bson:",inline"`
	Name     string `json:"name" bson:"name" gorm:"size:255"`
	Email    string `json:"email" bson:"email" gorm:"size:255;uniqueIndex" validate:"required,email"`
	Password string `json:"-" bson:"password" gorm:"size:255"`
	Role     string `json:"role" bson:"role" gorm:"size:32"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
