package distro

import (
	"errors"
	"testing"
)

func TestRegistryGet(t *testing.T) {
	tests := []struct {
		name    string
		id      ID
		wantErr bool
	}{
		{"bionic", Bionic, false},
		{"focal", Focal, false},
		{"jammy", Jammy, false},
		{"noble", Noble, false},
		{"unknown", ID("unknown"), true},
		{"empty", ID(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Get(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Get(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
				return
			}
			if !tt.wantErr && img.ID != tt.id {
				t.Errorf("Get(%q) returned image with ID %q", tt.id, img.ID)
			}
		})
	}
}

func TestDefaultID(t *testing.T) {
	if id := DefaultID(); id != Bionic {
		t.Errorf("DefaultID() = %q, want %q", id, Bionic)
	}
	if !IsRegistered(DefaultID()) {
		t.Error("default image is not registered")
	}
}

func TestList(t *testing.T) {
	want := []ID{Bionic, Focal, Jammy, Noble}
	got := List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPullHint(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"bionic", "bakerx pull cloud-images.ubuntu.com bionic"},
		{"jammy", "bakerx pull cloud-images.ubuntu.com jammy"},
		{"xenial", "bakerx pull cloud-images.ubuntu.com xenial"},
	}

	for _, tt := range tests {
		if got := PullHint(tt.id); got != tt.want {
			t.Errorf("PullHint(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestErrUnknownDistro(t *testing.T) {
	_, err := Get(ID("nonexistent"))
	if err == nil {
		t.Fatal("expected error for unknown distro")
	}

	var unknownErr *ErrUnknownDistro
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error should be *ErrUnknownDistro, got %T", err)
	}
	if unknownErr.ID != ID("nonexistent") {
		t.Errorf("ErrUnknownDistro.ID = %q, want %q", unknownErr.ID, "nonexistent")
	}
}
