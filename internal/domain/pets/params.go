package pets

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
)

// maxFormMemory es lo que ParseMultipartForm guarda en memoria antes de ir a disco.
const maxFormMemory = 1 << 20

// ErrUnsupportedMedia: el body no es un form (urlencoded o multipart).
var ErrUnsupportedMedia = errors.New("unsupported form content type")

// permitted son los únicos campos que se leen del form (strong params).
// Cualquier otro key (is_admin, id, created_at...) se descarta sin error.
var permitted = []string{"name", "address", "species", "found_on"}

// ParseFields lee pet[campo] del body; acepta "campo" plano como fallback.
// Acepta urlencoded y multipart con cualquier verbo; sin Content-Type no hay campos.
func ParseFields(r *http.Request) (Fields, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return Fields{}, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return Fields{}, ErrUnsupportedMedia
	}

	switch mt {
	case "application/x-www-form-urlencoded":
		err = r.ParseForm()
	case "multipart/form-data":
		// ParseForm ignora multipart; así PATCH/PUT lo leen igual que POST
		err = r.ParseMultipartForm(maxFormMemory)
		if errors.Is(err, http.ErrNotMultipart) {
			err = nil
		}
	default:
		return Fields{}, ErrUnsupportedMedia
	}
	if err != nil {
		return Fields{}, err
	}
	return FieldsFromValues(r.PostForm), nil
}

func FieldsFromValues(form url.Values) Fields {
	var f Fields
	for _, key := range permitted {
		v, ok := lookup(form, key)
		if !ok {
			continue
		}
		switch key {
		case "name":
			f.Name = &v
		case "address":
			f.Address = &v
		case "species":
			f.Species = &v
		case "found_on":
			f.FoundOn = &v
		}
	}
	return f
}

func lookup(form url.Values, key string) (string, bool) {
	for _, k := range []string{"pet[" + key + "]", key} {
		if vs, ok := form[k]; ok && len(vs) > 0 {
			return vs[0], true
		}
	}
	return "", false
}
