package enum

type RecipientType string

const (
	RecipientTypeTo  RecipientType = "To"
	RecipientTypeCC  RecipientType = "CC"
	RecipientTypeBCC RecipientType = "BCC"
)

func (t RecipientType) String() string {
	return string(t)
}

func (t RecipientType) IsValid() bool {
	switch t {
	case RecipientTypeTo, RecipientTypeCC, RecipientTypeBCC:
		return true
	}
	return false
}
