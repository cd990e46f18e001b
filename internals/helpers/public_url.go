package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PublicURL mengubah path relatif hasil upload (mis. "uploads/absensi/x.jpg")
// menjadi URL absolut {scheme}://{host}/{path}.
// Path kosong atau bukan path upload dikembalikan apa adanya.
func PublicURL(c *fiber.Ctx, relPath string) string {
	if relPath == "" || !strings.HasPrefix(relPath, "uploads/") {
		return relPath
	}
	return c.BaseURL() + "/" + relPath
}
