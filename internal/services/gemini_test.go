package services

import "testing"

func TestImageMIMEType(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1/a.jpg", "image/jpeg"},
		{"https://res.cloudinary.com/demo/image/upload/v1/a.jpeg", "image/jpeg"},
		{"https://res.cloudinary.com/demo/image/upload/v1/a.PNG", "image/png"},
		{"https://res.cloudinary.com/demo/image/upload/v1/a.webp", "image/webp"},
		{"https://res.cloudinary.com/demo/image/upload/v1/a.gif", "image/gif"},
		{"https://res.cloudinary.com/demo/image/upload/v1/a.heic", "image/heic"},
		{"https://res.cloudinary.com/demo/image/upload/v1/no-extension", "image/jpeg"},
		{"https://res.cloudinary.com/demo/image/upload/v1/a.png?_a=token", "image/png"},
	}

	for _, tc := range tests {
		if got := imageMIMEType(tc.url); got != tc.want {
			t.Errorf("imageMIMEType(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
