package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDefault_MatchesFixedLayout(t *testing.T) {
	m := Default()

	assert.Equal(t, "res/movies/movie_list", m.Catalog.Path)
	assert.Equal(t, "res/movies", m.Content.Dir)
	assert.Equal(t, ".tmov", m.Content.Extension)
	assert.Equal(t, "---\n", m.Content.Separator)
	assert.Equal(t, 2*time.Second, m.Content.Delay)
	assert.Nil(t, m.Relay)
	require.NoError(t, m.Validate())
}

func TestApply_OverridesOnlySetFields(t *testing.T) {
	m := Default()

	err := m.Apply(Overrides{
		ContentDir: ptr("/srv/movies"),
		Delay:      ptr("250ms"),
	})
	require.NoError(t, err)

	assert.Equal(t, "res/movies/movie_list", m.Catalog.Path)
	assert.Equal(t, "/srv/movies", m.Content.Dir)
	assert.Equal(t, 250*time.Millisecond, m.Content.Delay)
}

func TestApply_InvalidDelay(t *testing.T) {
	err := Default().Apply(Overrides{Delay: ptr("soon")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid delay "soon"`)
}

func TestApply_RelayEnablesDefaults(t *testing.T) {
	m := Default()

	require.NoError(t, m.Apply(Overrides{Relay: &RelayOverrides{URL: ptr("http://localhost:3000/socket.io/")}}))

	require.NotNil(t, m.Relay)
	assert.Equal(t, "http://localhost:3000/socket.io/", m.Relay.URL)
	assert.Equal(t, DefaultRelayEvent, m.Relay.Event)
	assert.Equal(t, DefaultRelayTimeout, m.Relay.Timeout)
	require.NoError(t, m.Validate())

	require.NoError(t, m.Apply(Overrides{Relay: &RelayOverrides{Event: ptr("reveal"), InsecureSkipVerify: ptr(true)}}))
	assert.Equal(t, "http://localhost:3000/socket.io/", m.Relay.URL, "later overrides keep earlier relay fields")
	assert.Equal(t, "reveal", m.Relay.Event)
	assert.True(t, m.Relay.InsecureSkipVerify)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(m *Model)
		wantErr string
	}{
		{name: "empty catalog path", mutate: func(m *Model) { m.Catalog.Path = "" }, wantErr: "catalog path"},
		{name: "empty content dir", mutate: func(m *Model) { m.Content.Dir = "" }, wantErr: "content dir"},
		{name: "empty separator", mutate: func(m *Model) { m.Content.Separator = "" }, wantErr: "separator"},
		{name: "negative delay", mutate: func(m *Model) { m.Content.Delay = -time.Second }, wantErr: "delay"},
		{name: "relative relay url", mutate: func(m *Model) { m.Relay = NewRelaySettings("localhost") }, wantErr: "must be absolute"},
		{name: "empty relay event", mutate: func(m *Model) {
			m.Relay = NewRelaySettings("http://localhost:3000")
			m.Relay.Event = ""
		}, wantErr: "relay event"},
		{name: "zero delay is fine", mutate: func(m *Model) { m.Content.Delay = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := Default()
			tc.mutate(m)
			err := m.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
