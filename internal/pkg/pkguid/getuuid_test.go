package pkguid

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

const (
	knownUUID = "d683cdda-4987-48a5-9e32-cb37adfe3db0"
	entityURI = "http://onto-ns.com/meta/0.1/Energy/"
)

func TestGetRandom(t *testing.T) {
	for _, id := range []string{"", string([]byte{})} {
		got, v, err := GetUUID(id)
		if err != nil {
			t.Fatalf("GetUUID(%q): %v", id, err)
		}
		if v != VariantRandom {
			t.Fatalf("expected RANDOM, got %s", v)
		}
		if !IsUUID(got) || len(got) != UUIDLen {
			t.Fatalf("expected uuid, got %q", got)
		}
		if got[14] != '4' {
			t.Fatalf("expected version 4, got %q", got)
		}
	}
}

func TestGetRandomUsesEntropySource(t *testing.T) {
	d := NewDeriver(WithRandom(bytes.NewReader(make([]byte, 16))))

	got, v, err := d.Get("")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != VariantRandom {
		t.Fatalf("expected RANDOM, got %s", v)
	}
	if got != "00000000-0000-4000-8000-000000000000" {
		t.Fatalf("unexpected uuid from zero entropy: %q", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestGetRandomEntropyFailure(t *testing.T) {
	d := NewDeriver(WithRandom(failingReader{}))

	_, v, err := d.Get("")
	if !errors.Is(err, ErrRandom) {
		t.Fatalf("expected ErrRandom, got %v", err)
	}
	if v != -1 {
		t.Fatalf("expected -1 variant on failure, got %d", v)
	}
}

func TestGetRandomDistinct(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		got, _, err := GetUUID("")
		if err != nil {
			t.Fatalf("GetUUID: %v", err)
		}
		if _, dup := seen[got]; dup {
			t.Fatalf("duplicate random uuid %q after %d calls", got, i)
		}
		seen[got] = struct{}{}
	}
}

func TestGetCopy(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{knownUUID, knownUUID},
		{knownUUID + "/", knownUUID},
		{knownUUID + "#", knownUUID},
		{strings.ToUpper(knownUUID), knownUUID},
		{"A58D4302-c9be-416d-a36c-cb25524a5a17", "a58d4302-c9be-416d-a36c-cb25524a5a17"},
	}
	for _, tc := range cases {
		id, want := tc.id, tc.want
		got, v, err := GetUUID(id)
		if err != nil {
			t.Fatalf("GetUUID(%q): %v", id, err)
		}
		if v != VariantCopy {
			t.Fatalf("GetUUID(%q): expected COPY, got %s", id, v)
		}
		if got != want {
			t.Fatalf("GetUUID(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestGetExtract(t *testing.T) {
	for _, suffix := range []string{"", "/", "#"} {
		got, v, err := GetUUID(entityURI + knownUUID + suffix)
		if err != nil {
			t.Fatalf("GetUUID: %v", err)
		}
		if v != VariantExtract {
			t.Fatalf("suffix %q: expected EXTRACT, got %s", suffix, v)
		}
		if got != knownUUID {
			t.Fatalf("suffix %q: got %q", suffix, got)
		}
	}

	got, v, err := GetUUID(entityURI + strings.ToUpper(knownUUID))
	if err != nil || v != VariantExtract || got != knownUUID {
		t.Fatalf("expected lower cased extract, got %q %s %v", got, v, err)
	}
}

func TestGetHash(t *testing.T) {
	ids := []string{
		"abc",
		"?683cdda-4987-48a5-9e32-cb37adfe3db0",
		entityURI + knownUUID + "#x",
		entityURI + knownUUID + "//",
		knownUUID + "+",
		"http://onto-ns.com/meta/0.1/Energy",
	}
	for _, id := range ids {
		got, v, err := GetUUID(id)
		if err != nil {
			t.Fatalf("GetUUID(%q): %v", id, err)
		}
		if v != VariantHash {
			t.Fatalf("GetUUID(%q): expected HASH, got %s", id, v)
		}
		want := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(id)).String()
		if got != want {
			t.Fatalf("GetUUID(%q) = %q, want %q", id, got, want)
		}
		if got[14] != '5' || !strings.ContainsRune("89ab", rune(got[19])) {
			t.Fatalf("GetUUID(%q) = %q: bad version or variant bits", id, got)
		}
	}
}

func TestGetHashKnownValue(t *testing.T) {
	got, v, err := GetUUID("python.org")
	if err != nil {
		t.Fatalf("GetUUID: %v", err)
	}
	if v != VariantHash || got != "886313e1-3b8a-5372-9b90-0c9aee199e5d" {
		t.Fatalf("unexpected hash of python.org: %q %s", got, v)
	}
}

func TestGetHashDeterministic(t *testing.T) {
	d1 := NewDeriver()
	d2 := NewDeriver(WithRandom(bytes.NewReader(nil)))

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := d1
			if i%2 == 1 {
				d = d2
			}
			got, _, err := d.Get("my-entity")
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r != results[0] {
			t.Fatalf("result %d = %q differs from %q", i, r, results[0])
		}
	}
}

func TestPutShortBuffer(t *testing.T) {
	buf := make([]byte, UUIDLen-1)
	v, err := PutUUID(buf, []byte("abc"))
	if !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	if v != -1 {
		t.Fatalf("expected -1, got %d", v)
	}
	if !bytes.Equal(buf, make([]byte, UUIDLen-1)) {
		t.Fatalf("buffer was written on error")
	}
}

func TestPutWritesOnlyUUIDLen(t *testing.T) {
	buf := bytes.Repeat([]byte{'x'}, UUIDLen+4)
	v, err := PutUUID(buf, []byte(knownUUID))
	if err != nil {
		t.Fatalf("PutUUID: %v", err)
	}
	if v != VariantCopy {
		t.Fatalf("expected COPY, got %s", v)
	}
	if string(buf[:UUIDLen]) != knownUUID || string(buf[UUIDLen:]) != "xxxx" {
		t.Fatalf("unexpected buffer %q", buf)
	}
}

func TestPutEmbeddedNUL(t *testing.T) {
	id := []byte("abc\x00def")
	buf := make([]byte, UUIDLen)
	v, err := PutUUID(buf, id)
	if err != nil {
		t.Fatalf("PutUUID: %v", err)
	}
	want := uuid.NewSHA1(uuid.NameSpaceDNS, id).String()
	if v != VariantHash || string(buf) != want {
		t.Fatalf("expected hash over all bytes, got %q %s", buf, v)
	}
}

func TestVariantString(t *testing.T) {
	for _, v := range []Variant{VariantCopy, VariantExtract, VariantRandom, VariantHash} {
		back, ok := ParseVariant(v.String())
		if !ok || back != v {
			t.Fatalf("ParseVariant(%q) = %v, %v", v.String(), back, ok)
		}
	}
	if got := Variant(42).String(); got != "UNKNOWN" {
		t.Fatalf("unexpected unknown variant string %q", got)
	}
	if _, ok := ParseVariant("nope"); ok {
		t.Fatalf("expected ParseVariant to fail")
	}
}
