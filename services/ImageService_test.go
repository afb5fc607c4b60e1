package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ichramsyah/bebasblog-backend/database/storetest"
)

// fileHeaders builds real multipart file headers the way gin would hand them over.
func fileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := w.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(data)
	}
	w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["images"]
}

func TestImageUploadAndOpen(t *testing.T) {
	store := storetest.New()
	svc := NewImageService(store.Images, "http://localhost:5000/")

	headers := fileHeaders(t, map[string][]byte{"cat.PNG": []byte("png-bytes")})
	url, err := svc.Upload(context.Background(), headers[0])
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	const prefix = "http://localhost:5000/api/images/"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("url = %q", url)
	}

	rc, contentType, err := svc.Open(context.Background(), strings.TrimPrefix(url, prefix))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if contentType != "image/png" || string(data) != "png-bytes" {
		t.Fatalf("got %q %q", contentType, data)
	}
}

func TestImageUploadRejects(t *testing.T) {
	svc := NewImageService(storetest.New().Images, "http://localhost:5000")

	headers := fileHeaders(t, map[string][]byte{"notes.gif": []byte("gif")})
	_, err := svc.Upload(context.Background(), headers[0])
	wantStatus(t, err, http.StatusBadRequest)

	big := fileHeaders(t, map[string][]byte{"big.jpg": bytes.Repeat([]byte("x"), 5<<20+1)})
	_, err = svc.UploadAll(context.Background(), big)
	wantStatus(t, err, http.StatusBadRequest)
}

func TestImageOpenMissing(t *testing.T) {
	svc := NewImageService(storetest.New().Images, "http://localhost:5000")
	for _, id := range []string{"zzz", primitive.NewObjectID().Hex()} {
		_, _, err := svc.Open(context.Background(), id)
		wantStatus(t, err, http.StatusNotFound)
	}
}
