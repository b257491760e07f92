package domain

import "fmt"

type ProfileType string

const (
	ProfileTypeSalon  ProfileType = "salon"
	ProfileTypeRetail ProfileType = "retail"
)

// ConnectionProfile identifies one upstream business backend. Everything a
// report needs from the ambient session (salon/account/retail codes,
// currency) is carried here and injected at construction time; nothing reads
// it from global state.
type ConnectionProfile struct {
	Name        string
	Type        ProfileType
	Host        string
	Token       string
	SalonID     string
	AccountCode string
	RetailCode  string
	Currency    string
}

func (p ConnectionProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Type, p.Name)
}
