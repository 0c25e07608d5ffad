package catalog

type SlotStatus string

const (
	SlotStatusActive   SlotStatus = "active"
	SlotStatusReserved SlotStatus = "reserved"
)

func (s SlotStatus) String() string {
	return string(s)
}

func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusActive, SlotStatusReserved:
		return true
	default:
		return false
	}
}
