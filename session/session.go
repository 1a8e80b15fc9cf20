package session

// Key names a persisted session field.
type Key string

const (
	KeyAccessToken  Key = "access_token"
	KeyRefreshToken Key = "refresh_token"
	KeyRole         Key = "user_role"
	KeyDistrict     Key = "user_district"
	KeyCenterID     Key = "center_id"
	KeyCenterName   Key = "center_name"
	KeyFirstName    Key = "user_first_name"
	KeyLastName     Key = "user_last_name"
)

var allKeys = []Key{
	KeyAccessToken,
	KeyRefreshToken,
	KeyRole,
	KeyDistrict,
	KeyCenterID,
	KeyCenterName,
	KeyFirstName,
	KeyLastName,
}

// AllKeys returns every key owned by a session, in a stable order.
func AllKeys() []Key {
	keys := make([]Key, len(allKeys))
	copy(keys, allKeys)
	return keys
}

// Session is the signed-in user's client-side state.
// Role, district and center fields are copied from unverified token claims. They are hints
// for deciding what to show, never an authorization decision; the backend enforces access.
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`    // Bearer token sent on every request
	RefreshToken string `json:"refresh_token,omitempty"`   // Exchanged at /api/token/refresh/
	Role         string `json:"user_role,omitempty"`       // Role claim (admin, district_manager, ...)
	District     string `json:"user_district,omitempty"`   // District claim, "" for island-wide roles
	CenterID     string `json:"center_id,omitempty"`       // Center claim, decimal string
	CenterName   string `json:"center_name,omitempty"`     // Center name claim
	FirstName    string `json:"user_first_name,omitempty"` // From /api/users/me/
	LastName     string `json:"user_last_name,omitempty"`  // From /api/users/me/
}

// Value returns the field stored under key.
func (s Session) Value(key Key) string {
	switch key {
	case KeyAccessToken:
		return s.AccessToken
	case KeyRefreshToken:
		return s.RefreshToken
	case KeyRole:
		return s.Role
	case KeyDistrict:
		return s.District
	case KeyCenterID:
		return s.CenterID
	case KeyCenterName:
		return s.CenterName
	case KeyFirstName:
		return s.FirstName
	case KeyLastName:
		return s.LastName
	}
	return ""
}

func (s *Session) set(key Key, value string) {
	switch key {
	case KeyAccessToken:
		s.AccessToken = value
	case KeyRefreshToken:
		s.RefreshToken = value
	case KeyRole:
		s.Role = value
	case KeyDistrict:
		s.District = value
	case KeyCenterID:
		s.CenterID = value
	case KeyCenterName:
		s.CenterName = value
	case KeyFirstName:
		s.FirstName = value
	case KeyLastName:
		s.LastName = value
	}
}

// Empty reports whether no field is set.
func (s Session) Empty() bool {
	return s == Session{}
}

// Authenticated reports whether an access token is present. Token validity is not checked.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// IsKnownKey reports whether key is one of the session keys.
func IsKnownKey(key Key) bool {
	for _, k := range allKeys {
		if k == key {
			return true
		}
	}
	return false
}
