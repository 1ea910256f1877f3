package vocab

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/go-flashtok/internal/testutil"
)

func TestLoadVocab(t *testing.T) {
	path := testutil.WriteVocabFile(t, []string{"[PAD]", "[UNK]", "[CLS]", "[SEP]", "hello", "##lo"})

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if v.Size() != 6 {
		t.Fatalf("Size = %d; want 6", v.Size())
	}
	if got := v.IDOf("hello", -1); got != 4 {
		t.Errorf("IDOf(hello) = %d; want 4", got)
	}
	if got := v.TokenOf(5); got != "##lo" {
		t.Errorf("TokenOf(5) = %q; want %q", got, "##lo")
	}
}

func TestReadVocabSkipsBlanksAndTrimsTrailing(t *testing.T) {
	v, err := Read(strings.NewReader("alpha  \n\n\nbeta\t\ngamma\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if v.Size() != 3 {
		t.Fatalf("Size = %d; want 3", v.Size())
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if got := v.TokenOf(int32(i)); got != want {
			t.Errorf("TokenOf(%d) = %q; want %q", i, got, want)
		}
	}
}

// id_of(token_of(i)) == i for every valid i.
func TestVocabRoundTrip(t *testing.T) {
	v, err := Read(strings.NewReader("[PAD]\n[UNK]\n[CLS]\n[SEP]\nfoo\nbar\n##baz\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	for i := int32(0); i < int32(v.Size()); i++ {
		if got := v.IDOf(v.TokenOf(i), -1); got != i {
			t.Errorf("IDOf(TokenOf(%d)) = %d; want %d", i, got, i)
		}
	}
}

func TestIDOfMissingReturnsDefault(t *testing.T) {
	v, err := Read(strings.NewReader("a\nb\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got := v.IDOf("missing", 0); got != 0 {
		t.Errorf("IDOf(missing, 0) = %d; want 0", got)
	}
	if got := v.IDOf("missing", 42); got != 42 {
		t.Errorf("IDOf(missing, 42) = %d; want 42", got)
	}
}

func TestSpecials(t *testing.T) {
	v, err := Read(strings.NewReader("[PAD]\n[UNK]\n[CLS]\n[SEP]\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	sp := v.Specials()
	if sp.Pad != 0 || sp.Unk != 1 || sp.Cls != 2 || sp.Sep != 3 {
		t.Errorf("Specials = %+v; want 0/1/2/3", sp)
	}
}

func TestSpecialsDefaults(t *testing.T) {
	v, err := Read(strings.NewReader("just\nwords\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	sp := v.Specials()
	if sp.Pad != 0 || sp.Unk != 100 || sp.Cls != 101 || sp.Sep != 102 {
		t.Errorf("Specials = %+v; want BERT-base defaults 0/100/101/102", sp)
	}
}

func TestLoadVocabMissingFile(t *testing.T) {
	if _, err := Load("does/not/exist.txt"); err == nil {
		t.Fatal("Load succeeded on a missing file; want error")
	}
}

func TestReadVocabEmpty(t *testing.T) {
	if _, err := Read(strings.NewReader("\n \n")); !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("err = %v; want ErrEmptyVocabulary", err)
	}
}
