package domain

import (
	"fmt"
	"strings"
)

// Vaccine identifies one of the eight coverage indicators carried by a record.
type Vaccine string

const (
	VaccineBCG          Vaccine = "bcg"
	VaccineDTP          Vaccine = "dtp"
	VaccinePenta        Vaccine = "penta"
	VaccinePolio        Vaccine = "polio"
	VaccineRotavirus    Vaccine = "rotavirus"
	VaccineTripleViral1 Vaccine = "triplice_viral_1"
	VaccineTripleViral2 Vaccine = "triplice_viral_2"
	VaccineVaricela     Vaccine = "varicela"
)

// AllVaccines is the closed vaccine set in canonical order.
var AllVaccines = []Vaccine{
	VaccineBCG,
	VaccineDTP,
	VaccinePenta,
	VaccinePolio,
	VaccineRotavirus,
	VaccineTripleViral1,
	VaccineTripleViral2,
	VaccineVaricela,
}

// ParseVaccine validates a vaccine key. Matching is case-insensitive.
func ParseVaccine(s string) (Vaccine, error) {
	v := Vaccine(strings.ToLower(strings.TrimSpace(s)))
	if v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("unknown vaccine %q", s)
}

func (v Vaccine) Valid() bool {
	switch v {
	case VaccineBCG, VaccineDTP, VaccinePenta, VaccinePolio,
		VaccineRotavirus, VaccineTripleViral1, VaccineTripleViral2, VaccineVaricela:
		return true
	}
	return false
}

func (v Vaccine) String() string {
	return string(v)
}

// MunicipalityRecord is one row of the municipal vaccination dataset.
type MunicipalityRecord struct {
	Municipio string `json:"municipio" db:"municipio"`
	UF        string `json:"uf" db:"uf"`
	Regiao    string `json:"regiao" db:"regiao"`
	Tipo      string `json:"tipo" db:"tipo"`
	Populacao int    `json:"populacao" db:"populacao"`
	UBSCount  int    `json:"ubs_count" db:"ubs_count"`

	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	BCG          float64 `json:"bcg" db:"bcg"`
	DTP          float64 `json:"dtp" db:"dtp"`
	Penta        float64 `json:"penta" db:"penta"`
	Polio        float64 `json:"polio" db:"polio"`
	Rotavirus    float64 `json:"rotavirus" db:"rotavirus"`
	TripleViral1 float64 `json:"triplice_viral_1" db:"triplice_viral_1"`
	TripleViral2 float64 `json:"triplice_viral_2" db:"triplice_viral_2"`
	Varicela     float64 `json:"varicela" db:"varicela"`
}

// Coverage returns the coverage percentage for a vaccine. The second value is
// false for keys outside the closed vaccine set.
func (r MunicipalityRecord) Coverage(v Vaccine) (float64, bool) {
	switch v {
	case VaccineBCG:
		return r.BCG, true
	case VaccineDTP:
		return r.DTP, true
	case VaccinePenta:
		return r.Penta, true
	case VaccinePolio:
		return r.Polio, true
	case VaccineRotavirus:
		return r.Rotavirus, true
	case VaccineTripleViral1:
		return r.TripleViral1, true
	case VaccineTripleViral2:
		return r.TripleViral2, true
	case VaccineVaricela:
		return r.Varicela, true
	}
	return 0, false
}

// Coverages returns all eight coverage values in AllVaccines order.
func (r MunicipalityRecord) Coverages() []float64 {
	return []float64{
		r.BCG, r.DTP, r.Penta, r.Polio,
		r.Rotavirus, r.TripleViral1, r.TripleViral2, r.Varicela,
	}
}

// HasCoordinates reports whether the record can be placed on a map.
func (r MunicipalityRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
