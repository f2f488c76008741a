package acumba_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mailbridge/mailbridge/pkg/mailer"
	"github.com/mailbridge/mailbridge/pkg/mailer/acumba"
	"github.com/mailbridge/mailbridge/pkg/mailer/transport"
)

func TestFactory_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dsn      string
		identity string
	}{
		{dsn: "acumba+api://T123@default", identity: "acumba+api://acumbamail.com"},
		{dsn: "acumba+api://T123@mail.example.org", identity: "acumba+api://mail.example.org"},
		{dsn: "acumba+api://T123@mail.example.org:8080", identity: "acumba+api://mail.example.org:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			t.Parallel()

			dsn, err := transport.ParseDSN(tt.dsn)
			require.NoError(t, err)

			tr, err := acumba.NewFactory(nil, nil).Create(dsn)

			require.NoError(t, err)
			require.IsType(t, &acumba.Transport{}, tr)
			require.Equal(t, tt.identity, tr.String())
		})
	}
}

func TestFactory_Create_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	dsn, err := transport.ParseDSN("acumba+smtp://T123@default")
	require.NoError(t, err)

	tr, err := acumba.NewFactory(nil, nil).Create(dsn)

	require.Nil(t, tr)
	require.ErrorIs(t, err, mailer.ErrUnsupportedScheme)
	require.Equal(t, mailer.KindUnsupportedScheme, mailer.KindOf(err))
	require.Contains(t, err.Error(), `"acumba+api"`)
	require.Contains(t, err.Error(), `"acumba+smtp"`)
}

func TestFactory_Schemes(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"acumba+api"}, acumba.NewFactory(nil, nil).Schemes())
}

func TestFactory_RegisteredWithDefaultRegistry(t *testing.T) {
	t.Parallel()

	tr, err := transport.FromString("acumba+api://T123@default")

	require.NoError(t, err)
	require.Equal(t, "acumba+api://acumbamail.com", tr.String())
	require.Contains(t, transport.Schemes(), acumba.Scheme)
}
