package enums

import "fmt"

// BiodataType distinguishes the groom/bride profile variants. The public
// listing filter exposes this as the `gender` query parameter.
type BiodataType string

const (
	BiodataTypeMale   BiodataType = "Male"
	BiodataTypeFemale BiodataType = "Female"
)

var validBiodataTypes = []BiodataType{
	BiodataTypeMale,
	BiodataTypeFemale,
}

// IsValid reports whether the value matches the canonical biodata type enum.
func (b BiodataType) IsValid() bool {
	for _, candidate := range validBiodataTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBiodataType converts the raw string to BiodataType.
func ParseBiodataType(value string) (BiodataType, error) {
	for _, candidate := range validBiodataTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid biodata type %q", value)
}

// Division is an administrative division used for permanent/present address
// filtering on the public listing.
type Division string

const (
	DivisionDhaka      Division = "Dhaka"
	DivisionChattogram Division = "Chattogram"
	DivisionRajshahi   Division = "Rajshahi"
	DivisionKhulna     Division = "Khulna"
	DivisionBarisal    Division = "Barisal"
	DivisionSylhet     Division = "Sylhet"
	DivisionRangpur    Division = "Rangpur"
	DivisionMymensingh Division = "Mymensingh"
)

var validDivisions = []Division{
	DivisionDhaka,
	DivisionChattogram,
	DivisionRajshahi,
	DivisionKhulna,
	DivisionBarisal,
	DivisionSylhet,
	DivisionRangpur,
	DivisionMymensingh,
}

// IsValid reports whether the value matches the canonical division enum.
func (d Division) IsValid() bool {
	for _, candidate := range validDivisions {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDivision converts the raw string to Division.
func ParseDivision(value string) (Division, error) {
	for _, candidate := range validDivisions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid division %q", value)
}

// SortOrder controls age ordering on the listing endpoint.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid reports whether the value matches the canonical sort order enum.
func (s SortOrder) IsValid() bool {
	return s == SortAsc || s == SortDesc
}

// ParseSortOrder converts the raw string to SortOrder, defaulting to ascending.
func ParseSortOrder(value string) (SortOrder, error) {
	switch value {
	case "", string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
