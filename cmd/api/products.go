package main

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alomda/internal/params"
	"alomda/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// helper: sniff first 512 bytes and reset reader
func sniffMIME(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read: %w", err)
	}
	mime := http.DetectContentType(buf[:n])

	// reset so later reads start from byte 0
	if seeker, ok := file.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("seek reset: %w", err)
		}
	}
	return mime, nil
}

var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// uploadProductImage validates and uploads the optional "image" form file.
// Returns "" when the form carries no image.
func (app *application) uploadProductImage(r *http.Request) (string, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("read image field: %w", err)
	}
	defer file.Close()

	// sniff actual MIME from bytes, the Content-Type header is client input
	mime, err := sniffMIME(file)
	if err != nil {
		return "", fmt.Errorf("sniff mime: %w", err)
	}
	if !allowedImageMIMEs[mime] {
		return "", fmt.Errorf("invalid image type: %s", mime)
	}

	publicID := fmt.Sprintf("product_%s_%d", uuid.New().String(), time.Now().UnixNano())
	return app.uploadToCloudinaryWithID(file, publicID)
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	const maxBytes = 3 * 1024 * 1024 // 3MB
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		app.badRequestResponse(w, r, fmt.Errorf("product name is required"))
		return
	}

	product := &store.Product{
		Name:        name,
		Description: optionalString(r.FormValue("description")),
		Published:   r.FormValue("published") == "true",
	}

	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			app.badRequestResponse(w, r, fmt.Errorf("invalid price: %s", raw))
			return
		}
		product.Price = &price
	}

	if raw := strings.TrimSpace(r.FormValue("category_id")); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid category ID: %s", raw))
			return
		}
		if _, err := app.store.Categories.GetByID(r.Context(), categoryID); err != nil {
			switch err {
			case store.ErrNotFound:
				app.badRequestResponse(w, r, fmt.Errorf("category does not exist"))
			default:
				app.internalServerError(w, r, err)
			}
			return
		}
		product.CategoryID = &categoryID
	}

	imageURL, err := app.uploadProductImage(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if imageURL != "" {
		product.Image = &imageURL
	}

	if err := app.store.Products.Create(r.Context(), product); err != nil {
		if imageURL != "" {
			go func(url string) {
				if delErr := app.deletePhotoFromCloudinary(url); delErr != nil {
					app.logger.Errorw("cloudinary cleanup failed", "url", url, "error", delErr)
				}
			}(imageURL)
		}
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/dashboard/products/%s", product.ID))
	if err := app.jsonResponse(w, http.StatusCreated, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	const maxBytes = 3 * 1024 * 1024 // 3MB
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	ctx := r.Context()

	existing, err := app.store.Products.GetByID(ctx, id)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// Apply partial changes on top of the stored row. Only fields present in
	// the form are touched.
	if _, ok := r.MultipartForm.Value["name"]; ok {
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			app.badRequestResponse(w, r, fmt.Errorf("product name cannot be empty"))
			return
		}
		existing.Name = name
	}
	if _, ok := r.MultipartForm.Value["description"]; ok {
		existing.Description = optionalString(r.FormValue("description"))
	}
	if _, ok := r.MultipartForm.Value["price"]; ok {
		raw := strings.TrimSpace(r.FormValue("price"))
		if raw == "" {
			existing.Price = nil
		} else {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 {
				app.badRequestResponse(w, r, fmt.Errorf("invalid price: %s", raw))
				return
			}
			existing.Price = &price
		}
	}
	if _, ok := r.MultipartForm.Value["category_id"]; ok {
		raw := strings.TrimSpace(r.FormValue("category_id"))
		if raw == "" {
			existing.CategoryID = nil
		} else {
			categoryID, err := uuid.Parse(raw)
			if err != nil {
				app.badRequestResponse(w, r, fmt.Errorf("invalid category ID: %s", raw))
				return
			}
			if _, err := app.store.Categories.GetByID(ctx, categoryID); err != nil {
				switch err {
				case store.ErrNotFound:
					app.badRequestResponse(w, r, fmt.Errorf("category does not exist"))
				default:
					app.internalServerError(w, r, err)
				}
				return
			}
			existing.CategoryID = &categoryID
		}
	}
	if _, ok := r.MultipartForm.Value["published"]; ok {
		existing.Published = r.FormValue("published") == "true"
	}

	var oldImage string
	imageURL, err := app.uploadProductImage(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if imageURL != "" {
		if existing.Image != nil {
			oldImage = *existing.Image
		}
		existing.Image = &imageURL
	}

	updated, err := app.store.Products.Update(ctx, existing)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// Replaced image is removed best-effort; the row is already consistent.
	if oldImage != "" {
		go func(url string) {
			if delErr := app.deletePhotoFromCloudinary(url); delErr != nil {
				app.logger.Errorw("cloudinary cleanup failed", "url", url, "error", delErr)
			}
		}(oldImage)
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

type PublishProductPayload struct {
	Published *bool `json:"published" validate:"required"`
}

func (app *application) publishProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload PublishProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Products.SetPublished(r.Context(), id, *payload.Published); err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{
		"id":        id,
		"published": *payload.Published,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	product, err := app.store.Products.GetByID(ctx, id)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.store.Products.Delete(ctx, id); err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if product.Image != nil {
		go func(url string) {
			if delErr := app.deletePhotoFromCloudinary(url); delErr != nil {
				app.logger.Errorw("cloudinary cleanup failed", "url", url, "error", delErr)
			}
		}(*product.Image)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) adminListProductsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	products, total, err := app.store.Products.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	response := map[string]any{
		"products":   products,
		"pagination": p,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
