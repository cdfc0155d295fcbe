package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string
	Count int
}

func TestCreate_AssignsShortUniqueIDs(t *testing.T) {
	r := New[record]()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := r.Create(func(id string) record { return record{ID: id} })
		assert.Len(t, id, idLength)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 200, r.Len())
}

func TestCreate_RegeneratesOnCollision(t *testing.T) {
	ids := []string{"aaaaaaaa", "aaaaaaaa", "bbbbbbbb"}
	orig := newID
	newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	t.Cleanup(func() { newID = orig })

	r := New[record]()
	first := r.Create(func(id string) record { return record{ID: id} })
	second := r.Create(func(id string) record { return record{ID: id} })

	assert.Equal(t, "aaaaaaaa", first)
	assert.Equal(t, "bbbbbbbb", second)
}

func TestViewUpdate_NotFound(t *testing.T) {
	r := New[record]()
	noop := func(*record) error { return nil }

	assert.ErrorIs(t, r.View("missing", noop), ErrNotFound)
	assert.ErrorIs(t, r.Update("missing", noop), ErrNotFound)
}

func TestUpdate_PropagatesError(t *testing.T) {
	r := New[record]()
	id := r.Create(func(id string) record { return record{ID: id} })

	sentinel := errors.New("rejected")
	err := r.Update(id, func(rec *record) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestUpdate_Concurrent(t *testing.T) {
	r := New[record]()
	id := r.Create(func(id string) record { return record{ID: id} })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Update(id, func(rec *record) error {
				rec.Count++
				return nil
			})
		}()
	}
	wg.Wait()

	var count int
	require.NoError(t, r.View(id, func(rec *record) error {
		count = rec.Count
		return nil
	}))
	assert.Equal(t, 50, count)
}

func TestEach_NewestFirst(t *testing.T) {
	r := New[record]()
	var created []string
	for i := 0; i < 5; i++ {
		created = append(created, r.Create(func(id string) record { return record{ID: id} }))
	}

	var got []string
	r.Each(func(id string, v *record) { got = append(got, v.ID) })

	want := []string{created[4], created[3], created[2], created[1], created[0]}
	assert.Equal(t, want, got)
}

func TestListLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
		{"1234567890123456789012345678901", "123456789012345678901234567..."},
		{"サーバーが頻繁にクラッシュしてユーザーから苦情が多数寄せられている問題について", "サーバーが頻繁にクラッシュしてユーザーから苦情が多数寄..."},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-runes", len([]rune(tt.in))), func(t *testing.T) {
			assert.Equal(t, tt.want, ListLabel(tt.in))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.33, Round2(7.0/3.0))
	assert.Equal(t, 3.6, Round2(2.3333333*0.6+5.5*0.4))
	assert.Equal(t, 5.5, Round2(5.5))
}
