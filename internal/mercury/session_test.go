package mercury

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Parallel()

	s := NewSession("initial", "", "")
	require.Equal(t, "initial", s.Token())

	_, _, ok := s.Credentials()
	require.False(t, ok)

	s.SetToken("renewed")
	require.Equal(t, "renewed", s.Token())

	email, password, ok := NewSession("k", "ops@example.com", "hunter2").Credentials()
	require.True(t, ok)
	require.Equal(t, "ops@example.com", email)
	require.Equal(t, "hunter2", password)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewSession("t0", "", "")

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetToken(fmt.Sprintf("t%d", i))
		}()
		go func() {
			defer wg.Done()
			require.NotEmpty(t, s.Token())
		}()
	}
	wg.Wait()
}
