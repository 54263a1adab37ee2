package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/smart-resume/internal/types"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	s := NewStore(ttl, 0)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStore_PutGet(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	defer s.Close()

	sub := &types.Submission{ID: "abc", Status: types.StatusGenerated}
	s.Put(sub)

	got, ok := s.Get("abc")
	require.True(t, ok)
	assert.Same(t, sub, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStore_IgnoresEmptyID(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	defer s.Close()

	s.Put(nil)
	s.Put(&types.Submission{})
	assert.Equal(t, 0, s.Len())
}

func TestStore_SubmissionsAreIndependent(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	defer s.Close()

	first := &types.Submission{ID: "one", Resume: &types.GeneratedResume{Text: "first"}}
	second := &types.Submission{ID: "two", Resume: &types.GeneratedResume{Text: "second"}}
	s.Put(first)
	s.Put(second)

	got, ok := s.Get("one")
	require.True(t, ok)
	assert.Equal(t, "first", got.Resume.Text)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Expiry(t *testing.T) {
	s, now := newTestStore(time.Minute)
	defer s.Close()

	s.Put(&types.Submission{ID: "old"})
	*now = now.Add(30 * time.Second)
	s.Put(&types.Submission{ID: "new"})

	*now = now.Add(45 * time.Second)
	_, ok := s.Get("old")
	assert.False(t, ok)
	_, ok = s.Get("new")
	assert.True(t, ok)

	assert.Equal(t, 1, s.EvictExpired())
	assert.Equal(t, 1, s.Len())
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s, now := newTestStore(0)
	defer s.Close()

	s.Put(&types.Submission{ID: "keep"})
	*now = now.Add(24 * 365 * time.Hour)

	_, ok := s.Get("keep")
	assert.True(t, ok)
	assert.Equal(t, 0, s.EvictExpired())
}

func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	defer s.Close()

	s.Put(&types.Submission{ID: "gone"})
	s.Delete("gone")
	_, ok := s.Get("gone")
	assert.False(t, ok)
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore(time.Hour, time.Millisecond)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("sub-%d", i)
			s.Put(&types.Submission{ID: id})
			_, ok := s.Get(id)
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}

func TestStore_CloseTwice(t *testing.T) {
	s := NewStore(time.Hour, time.Minute)
	assert.NotPanics(t, func() {
		s.Close()
		s.Close()
	})
}
