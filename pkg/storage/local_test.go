package storage

import (
	"bytes"
	"sort"
	"testing"
)

func tempDisk(t *testing.T) *localDisk {
	t.Helper()
	return &localDisk{root: t.TempDir(), baseURL: "http://localhost:8080/public"}
}

func TestLocalPutGet(t *testing.T) {
	d := tempDisk(t)

	if err := d.Put("uploads/a.png", []byte("png")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !d.Exists("uploads/a.png") {
		t.Fatal("file should exist after put")
	}

	data, err := d.Get("uploads/a.png")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !bytes.Equal(data, []byte("png")) {
		t.Errorf("got %q, want png", data)
	}
}

func TestLocalPutStream(t *testing.T) {
	d := tempDisk(t)

	if err := d.PutStream("uploads/b.jpeg", bytes.NewReader([]byte("jpeg"))); err != nil {
		t.Fatalf("putstream failed: %v", err)
	}

	rc, err := d.GetStream("uploads/b.jpeg")
	if err != nil {
		t.Fatalf("getstream failed: %v", err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "jpeg" {
		t.Errorf("got %q, want jpeg", buf.String())
	}
}

func TestLocalURL(t *testing.T) {
	d := tempDisk(t)

	got := d.URL("uploads/a.png")
	want := "http://localhost:8080/public/uploads/a.png"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLocalDelete(t *testing.T) {
	d := tempDisk(t)

	if err := d.Put("uploads/c.png", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := d.Delete("uploads/c.png"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if d.Exists("uploads/c.png") {
		t.Error("file still exists after delete")
	}

	// Deleting a missing file is not an error.
	if err := d.Delete("uploads/never.png"); err != nil {
		t.Errorf("delete of missing file: %v", err)
	}
}

func TestLocalFiles(t *testing.T) {
	d := tempDisk(t)

	for _, name := range []string{"uploads/one.png", "uploads/two.png", "uploads/sub/three.png"} {
		if err := d.Put(name, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	files, err := d.Files("uploads")
	if err != nil {
		t.Fatalf("files failed: %v", err)
	}
	sort.Strings(files)

	want := []string{"uploads/one.png", "uploads/two.png"}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("got %v, want %v", files, want)
			break
		}
	}
}
