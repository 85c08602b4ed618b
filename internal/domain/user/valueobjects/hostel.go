package valueobjects

import "fmt"

type Hostel string

const (
	HostelBlockA   Hostel = "Block A"
	HostelBlockB   Hostel = "Block B"
	HostelBlockC   Hostel = "Block C"
	HostelBlockD   Hostel = "Block D"
	HostelBlockE   Hostel = "Block E"
	HostelNewBlock Hostel = "New Block"
	HostelGirls    Hostel = "Girls Hostel"
)

var hostelWings = map[Hostel]Wing{
	HostelBlockA:   WingMale,
	HostelBlockB:   WingMale,
	HostelBlockC:   WingMale,
	HostelBlockD:   WingMale,
	HostelBlockE:   WingMale,
	HostelNewBlock: WingMale,
	HostelGirls:    WingFemale,
}

// Hostels lists the catalogue in display order.
func Hostels() []Hostel {
	return []Hostel{
		HostelBlockA,
		HostelBlockB,
		HostelBlockC,
		HostelBlockD,
		HostelBlockE,
		HostelNewBlock,
		HostelGirls,
	}
}

func (h Hostel) String() string {
	return string(h)
}

func (h Hostel) IsValid() bool {
	_, ok := hostelWings[h]
	return ok
}

// Wing returns the gender wing the hostel belongs to, or undefined for an
// unknown or empty hostel.
func (h Hostel) Wing() Wing {
	if w, ok := hostelWings[h]; ok {
		return w
	}
	return WingUndefined
}

func NewHostel(s string) (Hostel, error) {
	h := Hostel(s)
	if !h.IsValid() {
		return "", fmt.Errorf("invalid hostel: %s", s)
	}
	return h, nil
}
