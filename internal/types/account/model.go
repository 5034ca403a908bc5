package account

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username     string             `bson:"username" json:"username"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      string             `bson:"address" json:"address"`
	PasswordHash string             `bson:"password" json:"-"`
	Image        string             `bson:"image" json:"image"`
	Role         Role               `bson:"role" json:"role"`
	Status       Status             `bson:"acc_status" json:"acc_status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Actor is the authenticated principal attached to a request.
type Actor struct {
	ID       string
	Username string
	Role     Role
}

func (a Actor) Elevated() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}

// CanActOn is the single ownership rule: an actor may act on a resource iff
// it holds an elevated role or owns the resource.
func (a Actor) CanActOn(ownerID string) bool {
	return a.Elevated() || a.ID == ownerID
}
