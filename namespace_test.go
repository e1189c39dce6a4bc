package dbrec

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamdanielyin/dbrec/adapter"
)

func TestNewNamespaceHasDefaultSlot(t *testing.T) {
	ns := NewNamespace("t")
	assert.Equal(t, []string{DefaultKey}, ns.Keys())
	assert.False(t, ns.HasDB("anything"))
	_, err := ns.DB("anything")
	assert.True(t, errors.Is(err, ErrNoConnection))
}

func TestResolvePrefixAndExact(t *testing.T) {
	a, b := &stubAdapter{name: "A"}, &stubAdapter{name: "B"}
	ns := NewNamespace("t")
	ns.SetDB(`App\Setup`, a, `App\Models\`, false)
	ns.SetDB(`App\Models\User`, b, "", false)

	got, err := ns.DB(`App\Models\User`)
	require.NoError(t, err)
	assert.Same(t, b, got)

	got, err = ns.DB(`App\Models\Order`)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = ns.DB(`Other\Thing`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoConnection))
	var nce *NoConnectionError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, `Other\Thing`, nce.Class)
}

func TestResolveDefaultBeforePrefix(t *testing.T) {
	a, d := &stubAdapter{name: "A"}, &stubAdapter{name: "D"}
	ns := NewNamespace("t")
	ns.SetDB("setup", a, "app.", false)
	ns.SetDB("boot", d, "", true)

	got, err := ns.DB("app.User")
	require.NoError(t, err)
	assert.Same(t, d, got)

	got, err = ns.DB("setup")
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestResolveLastInsertedPrefix(t *testing.T) {
	a, b, c := &stubAdapter{name: "A"}, &stubAdapter{name: "B"}, &stubAdapter{name: "C"}
	ns := NewNamespace("t")
	ns.SetDB("s1", a, "app.", false)
	ns.SetDB("s2", b, "app.models.", false)

	got, _ := ns.DB("app.models.User")
	assert.Same(t, b, got)

	// overwriting keeps the key's original position
	ns.SetDB("s3", c, "app.", false)
	assert.Equal(t, []string{DefaultKey, "app.", "s1", "app.models.", "s2", "s3"}, ns.Keys())
	got, _ = ns.DB("app.models.User")
	assert.Same(t, b, got)
	got, _ = ns.DB("app.Order")
	assert.Same(t, c, got)
}

func TestBaseClassFillsDefault(t *testing.T) {
	a := &stubAdapter{name: "A"}
	ns := NewNamespace("t")
	SetDB[Record](a, InNamespace(ns))

	assert.Equal(t, []string{DefaultKey, BaseClass}, ns.Keys())
	got, err := DB[Widget](InNamespace(ns))
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.True(t, HasDB[User](InNamespace(ns)))
}

func TestGenericSetDB(t *testing.T) {
	a, b := &stubAdapter{name: "A"}, &stubAdapter{name: "B"}
	ns := NewNamespace("t")
	SetDB[User](a, InNamespace(ns), WithPrefix("github.com/iamdanielyin/dbrec.Wid"))

	assert.Equal(t, []string{DefaultKey, "github.com/iamdanielyin/dbrec.Wid", ClassOf[User]()}, ns.Keys())
	assert.True(t, HasDB[Widget](InNamespace(ns)))
	assert.False(t, HasDB[LegacyOrder](InNamespace(ns)))

	SetDB[LegacyOrder](b, InNamespace(ns), AsDefault())
	got, err := DB[Widget](InNamespace(ns))
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestHasDBMatchesDB(t *testing.T) {
	adapters := []adapter.Adapter{&stubAdapter{name: "A"}, &stubAdapter{name: "B"}, nil}
	classes := []string{"a.B", "a.BC", "a.C", "b.A", "default", ""}
	prefixes := []string{"", "a.", "a.B", "b"}

	for i := 0; i < 64; i++ {
		ns := NewNamespace("t")
		for j := 0; j <= i%5; j++ {
			n := i + j
			ns.SetDB(classes[n%len(classes)], adapters[n%len(adapters)], prefixes[n%len(prefixes)], n%7 == 0)
		}
		for _, class := range classes {
			got, err := ns.DB(class)
			assert.Equal(t, err == nil, ns.HasDB(class), fmt.Sprintf("round %d class %q", i, class))
			if err == nil {
				assert.NotNil(t, got)
			}
		}
	}
}

func TestConcurrentRegisterAndResolve(t *testing.T) {
	const writers, perWriter = 8, 50
	ns := NewNamespace("t")

	adapters := make([]*stubAdapter, writers)
	for w := range adapters {
		adapters[w] = &stubAdapter{name: fmt.Sprintf("w%d", w)}
	}
	class := func(w, i int) string { return fmt.Sprintf("pkg/w%d.Type%d", w, i) }

	stop := make(chan struct{})
	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				for w := 0; w < writers; w++ {
					c := class(w, perWriter-1)
					if ns.HasDB(c) {
						a, err := ns.DB(c)
						assert.NoError(t, err)
						assert.Same(t, adapters[w], a)
					}
				}
				keys := ns.Keys()
				assert.Equal(t, DefaultKey, keys[0])
				seen := make(map[string]bool, len(keys))
				for _, k := range keys {
					assert.False(t, seen[k], "duplicate key %s", k)
					seen[k] = true
				}
			}
		}()
	}

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ns.SetDB(class(w, 0), adapters[w], fmt.Sprintf("pkg/w%d.", w), false)
			for i := 1; i < perWriter; i++ {
				ns.SetDB(class(w, i), adapters[w], "", false)
			}
		}(w)
	}
	wg.Wait()
	close(stop)
	readers.Wait()

	keys := ns.Keys()
	require.Len(t, keys, 1+writers*(perWriter+1))
	assert.Equal(t, DefaultKey, keys[0])
	for w := 0; w < writers; w++ {
		prefix := fmt.Sprintf("pkg/w%d.", w)
		var own []string
		for _, k := range keys {
			if strings.HasPrefix(k, prefix) {
				own = append(own, k)
			}
		}
		want := []string{prefix}
		for i := 0; i < perWriter; i++ {
			want = append(want, class(w, i))
		}
		assert.Equal(t, want, own)

		a, err := ns.DB(prefix + "Unregistered")
		require.NoError(t, err)
		assert.Same(t, adapters[w], a)
	}
}
