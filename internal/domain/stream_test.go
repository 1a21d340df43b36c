package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestForecastJobEvent_Validate(t *testing.T) {
	tests := []struct {
		name     string
		event    ForecastJobEvent
		expected bool
	}{
		{
			name:     "complete event",
			event:    ForecastJobEvent{JobID: uuid.New(), Municipio: "Campinas", Vaccine: "bcg"},
			expected: true,
		},
		{
			name:     "missing job id",
			event:    ForecastJobEvent{Municipio: "Campinas", Vaccine: "bcg"},
			expected: false,
		},
		{
			name:     "missing municipio",
			event:    ForecastJobEvent{JobID: uuid.New(), Vaccine: "bcg"},
			expected: false,
		},
		{
			name:     "missing vaccine",
			event:    ForecastJobEvent{JobID: uuid.New(), Municipio: "Campinas"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Validate())
		})
	}
}

func TestParseVaccine(t *testing.T) {
	tests := []struct {
		input   string
		want    Vaccine
		wantErr bool
	}{
		{input: "bcg", want: VaccineBCG},
		{input: " Triplice_Viral_1 ", want: VaccineTripleViral1},
		{input: "VARICELA", want: VaccineVaricela},
		{input: "covid", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVaccine(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMunicipalityRecord_Coverage(t *testing.T) {
	rec := MunicipalityRecord{
		BCG: 90, DTP: 80, Penta: 70, Polio: 60,
		Rotavirus: 50, TripleViral1: 40, TripleViral2: 30, Varicela: 20,
	}

	for i, v := range AllVaccines {
		got, ok := rec.Coverage(v)
		assert.True(t, ok)
		assert.Equal(t, rec.Coverages()[i], got, string(v))
	}

	_, ok := rec.Coverage(Vaccine("covid"))
	assert.False(t, ok)
	assert.False(t, rec.HasCoordinates())
}
