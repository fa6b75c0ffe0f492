package entity

import "fmt"

// UserKind discriminates the User variants
type UserKind string

const (
	UserKindAdmin UserKind = "admin"
	UserKindVip   UserKind = "vip"
)

// User is either an AdminUser or a VipUser.
// The unexported marker keeps the set of variants closed to this package.
type User interface {
	Kind() UserKind
	isUser()
}

// AdminUser is the back office operator
type AdminUser struct {
	Email string `json:"email"`
}

// Kind implements User
func (AdminUser) Kind() UserKind { return UserKindAdmin }
func (AdminUser) isUser()        {}

// VipUser is a logged-in VIP client
type VipUser struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// Kind implements User
func (VipUser) Kind() UserKind { return UserKindVip }
func (VipUser) isUser()        {}

// UserRecord is the JSON shape of a User, {"type": "...", ...}
type UserRecord struct {
	Type  UserKind `json:"type"`
	Email string   `json:"email,omitempty"`
	Phone string   `json:"phone,omitempty"`
	Name  string   `json:"name,omitempty"`
}

// ToRecord flattens a User for the wire
func ToRecord(u User) (UserRecord, error) {
	switch v := u.(type) {
	case AdminUser:
		return UserRecord{Type: UserKindAdmin, Email: v.Email}, nil
	case VipUser:
		return UserRecord{Type: UserKindVip, Phone: v.Phone, Name: v.Name}, nil
	default:
		return UserRecord{}, fmt.Errorf("unknown user variant %T", u)
	}
}

// User rebuilds the variant from its record
func (r UserRecord) User() (User, error) {
	switch r.Type {
	case UserKindAdmin:
		return AdminUser{Email: r.Email}, nil
	case UserKindVip:
		return VipUser{Phone: r.Phone, Name: r.Name}, nil
	default:
		return nil, fmt.Errorf("unknown user type %q", r.Type)
	}
}

// AdminCredential is the persisted admin login
type AdminCredential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VipAccount is a persisted VIP login
type VipAccount struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Session binds an opaque token to a user
type Session struct {
	Token string     `json:"token"`
	User  UserRecord `json:"user"`
}

// VipRegistration is the self-service sign-up form
type VipRegistration struct {
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	CompanyName     string `json:"companyName"`
	ContactPerson   string `json:"contactPerson"`
	ShippingAddress string `json:"shippingAddress"`
}
