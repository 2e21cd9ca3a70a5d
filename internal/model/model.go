package model

import "time"

// Appointment is one scheduled class or event as returned by the
// appointments endpoint. Start and End are Unix epoch seconds (UTC).
type Appointment struct {
	ID                  int64  `json:"id"`
	AppointmentInstance int64  `json:"appointmentInstance"`
	Start               int64  `json:"start"`
	End                 int64  `json:"end"`
	StartTimeSlotName   string `json:"startTimeSlotName"`
	Type                string `json:"type"`

	Subjects  []string `json:"subjects"`
	Teachers  []string `json:"teachers"`
	Groups    []string `json:"groups"`
	Locations []string `json:"locations"`

	Cancelled         bool   `json:"cancelled"`
	Valid             bool   `json:"valid"`
	ChangeDescription string `json:"changeDescription"`
}

// StartTime returns Start as a wall-clock time in loc.
func (a Appointment) StartTime(loc *time.Location) time.Time {
	return time.Unix(a.Start, 0).In(loc)
}

// EndTime returns End as a wall-clock time in loc.
func (a Appointment) EndTime(loc *time.Location) time.Time {
	return time.Unix(a.End, 0).In(loc)
}

// CredentialKind tells which variant of Credential is active.
type CredentialKind int

const (
	// CredentialCode is a short-lived authorization code that must be
	// exchanged for an access token.
	CredentialCode CredentialKind = iota + 1
	// CredentialAccessToken is used directly against the API.
	CredentialAccessToken
)

func (k CredentialKind) String() string {
	switch k {
	case CredentialCode:
		return "code"
	case CredentialAccessToken:
		return "access_token"
	default:
		return "unknown"
	}
}

// Credential is either an authorization code or an access token, never
// both.
type Credential struct {
	Kind  CredentialKind
	Value string
}

func CodeCredential(code string) Credential {
	return Credential{Kind: CredentialCode, Value: code}
}

func AccessTokenCredential(token string) Credential {
	return Credential{Kind: CredentialAccessToken, Value: token}
}
