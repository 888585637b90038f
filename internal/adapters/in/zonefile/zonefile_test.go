package zonefile_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"fulfillment/internal/adapters/in/zonefile"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
tenants:
  pizza-roma:
    - name: Jarovce
      cityParts: [Jarovce]
      feeCents: 290
      minOrderCents: 1500
    - name: Bratislava
      cities: [Bratislava]
      feeCents: 390
  burger-hub:
    - name: Petrzalka
      postalPrefixes: ["851"]
      feeCents: 250
`

func TestParse(t *testing.T) {
	tenants, err := zonefile.Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, tenants, 2)

	assert.Equal(t, "burger-hub", tenants[0].TenantID.String())
	assert.Equal(t, "pizza-roma", tenants[1].TenantID.String())

	roma := tenants[1].Zones
	require.Len(t, roma, 2)
	assert.Equal(t, "Jarovce", roma[0].Name())
	assert.Equal(t, 1, roma[0].Position())
	minOrder, ok := roma[0].MinOrderCents()
	assert.True(t, ok)
	assert.Equal(t, int64(1500), minOrder)
	assert.Equal(t, 2, roma[1].Position())
	_, ok = roma[1].MinOrderCents()
	assert.False(t, ok)
}

func TestParse_ReportsEveryInvalidZone(t *testing.T) {
	_, err := zonefile.Parse([]byte(`
tenants:
  pizza-roma:
    - name: ""
      cities: [Bratislava]
    - name: Nowhere
      feeCents: -5
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone #1")
	assert.Contains(t, err.Error(), "zone #2")
}

func TestParse_InvalidTenant(t *testing.T) {
	_, err := zonefile.Parse([]byte(`
tenants:
  "Pizza Roma!":
    - name: City
      cities: [Bratislava]
`))

	require.Error(t, err)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := zonefile.Parse([]byte("tenants: [unclosed"))

	require.Error(t, err)
}

func TestLoadAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	tenants, err := zonefile.Load(path)
	require.NoError(t, err)

	store := memory.NewStore()
	require.NoError(t, zonefile.Seed(t.Context(), memory.NewUnitOfWorkFactory(store), tenants, slog.New(slog.DiscardHandler)))

	tenant, err := kernel.NewTenantID("pizza-roma")
	require.NoError(t, err)
	zones, err := store.ZoneRepository().ListByTenant(t.Context(), tenant)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "Jarovce", zones[0].Name())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := zonefile.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
}
