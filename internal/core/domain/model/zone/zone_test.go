package zone_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "nove mesto", zone.NormalizeText("  Nové   Mesto "))
	assert.Equal(t, "jarovce", zone.NormalizeText("JAROVCE"))
	assert.Equal(t, "petrzalka", zone.NormalizeText("Petržalka"))
	assert.Equal(t, "", zone.NormalizeText("   "))
}

func TestNormalizePostalCode(t *testing.T) {
	assert.Equal(t, "85108", zone.NormalizePostalCode("851 08"))
	assert.Equal(t, "SW1A1AA", zone.NormalizePostalCode(" sw1a 1aa "))
}

func TestNewZone(t *testing.T) {
	tenant, err := kernel.NewTenantID("pizza-roma")
	require.NoError(t, err)
	minOrder := int64(3000)

	t.Run("should create zone and keep criteria", func(t *testing.T) {
		z, err := zone.NewZone(zone.Params{
			TenantID:      tenant,
			Name:          " Jarovce ",
			Position:      1,
			Matcher:       zone.Matcher{CityParts: []string{"Jarovce", " "}, PostalPrefixes: []string{"851 1"}},
			FeeCents:      350,
			MinOrderCents: &minOrder,
		})

		require.NoError(t, err)
		require.NoError(t, z.Validate())
		assert.Equal(t, "Jarovce", z.Name())
		assert.Equal(t, []string{"Jarovce"}, z.Matcher().CityParts)
		assert.Equal(t, []string{"8511"}, z.Matcher().PostalPrefixes)
		m, ok := z.MinOrderCents()
		assert.True(t, ok)
		assert.Equal(t, int64(3000), m)

		minOrder = 1
		m, _ = z.MinOrderCents()
		assert.Equal(t, int64(3000), m)
		minOrder = 3000
	})

	t.Run("should reject a zone without criteria", func(t *testing.T) {
		_, err := zone.NewZone(zone.Params{TenantID: tenant, Name: "empty"})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		negative := int64(-1)
		_, err := zone.NewZone(zone.Params{
			TenantID:      tenant,
			Name:          "bad",
			Matcher:       zone.Matcher{Cities: []string{"Bratislava"}},
			FeeCents:      -10,
			MinOrderCents: &negative,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "zone feeCents")
		assert.Contains(t, err.Error(), "zone minOrderCents")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, zone.Zone{}.Validate(), zone.ErrZoneIsNotConstructed)
	})
}

func TestZone_Matches(t *testing.T) {
	tenant, _ := kernel.NewTenantID("pizza-roma")
	z, err := zone.NewZone(zone.Params{
		TenantID: tenant,
		Name:     "South",
		Matcher: zone.Matcher{
			CityParts:      []string{"Petržalka"},
			PostalPrefixes: []string{"851"},
			Cities:         []string{"Bratislava"},
		},
	})
	require.NoError(t, err)

	addr := zone.Address{PostalCode: "85101", City: "bratislava", CityPart: "petrzalka"}
	assert.True(t, z.Matches(zone.TierCityPart, addr))
	assert.True(t, z.Matches(zone.TierPostalPrefix, addr))
	assert.True(t, z.Matches(zone.TierCity, addr))
	assert.False(t, z.Matches(zone.TierNone, addr))

	empty := zone.Address{}
	assert.False(t, z.Matches(zone.TierCityPart, empty))
	assert.False(t, z.Matches(zone.TierPostalPrefix, empty))
	assert.False(t, z.Matches(zone.TierCity, empty))
}

func TestResolution_CheckMinOrder(t *testing.T) {
	tenant, _ := kernel.NewTenantID("pizza-roma")
	minOrder := int64(3000)
	withMin, err := zone.NewZone(zone.Params{
		TenantID: tenant, Name: "Jarovce", Matcher: zone.Matcher{CityParts: []string{"Jarovce"}}, MinOrderCents: &minOrder,
	})
	require.NoError(t, err)
	withoutMin, err := zone.NewZone(zone.Params{
		TenantID: tenant, Name: "Center", Matcher: zone.Matcher{Cities: []string{"Bratislava"}},
	})
	require.NoError(t, err)

	r := zone.Resolution{Zone: withMin, Tier: zone.TierCityPart}
	assert.False(t, r.CheckMinOrder(2999).Valid)
	assert.True(t, r.CheckMinOrder(3000).Valid)
	assert.Equal(t, "Jarovce", r.CheckMinOrder(0).ZoneName)
	assert.Equal(t, int64(3000), *r.CheckMinOrder(0).MinOrderCents)

	open := zone.Resolution{Zone: withoutMin, Tier: zone.TierCity}
	check := open.CheckMinOrder(0)
	assert.True(t, check.Valid)
	assert.Nil(t, check.MinOrderCents)
}
