package main

import (
	"fmt"
	"net/http"
	"net/url"

	"alomda/internal/params"
	"alomda/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// createInquiryHandler records the visitor's purchase intent and hands back
// a prefilled WhatsApp chat link. The reference code is a hashid of the
// inquiry row so staff can trace a chat message back to the product.
func (app *application) createInquiryHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	product, err := app.store.Products.GetByID(ctx, productID)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}
	if !product.Published {
		app.notFoundResponse(w, r, store.ErrNotFound)
		return
	}

	inquiry := &store.Inquiry{
		ProductID:   product.ID,
		ProductName: product.Name,
	}
	encode := func(id int64) (string, error) {
		return app.inquiryCodec.EncodeInt64([]int64{id})
	}
	if err := app.store.Inquiries.Create(ctx, inquiry, encode); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	reference := inquiry.Reference

	message := fmt.Sprintf("مرحباً، أود طلب المنتج: %s (رقم الطلب: %s)", product.Name, reference)
	whatsappURL := fmt.Sprintf("https://wa.me/%s?text=%s",
		app.config.whatsapp.number, url.QueryEscape(message))

	response := map[string]string{
		"reference":    reference,
		"whatsapp_url": whatsappURL,
	}

	if err := app.jsonResponse(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listInquiriesHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	inquiries, total, err := app.store.Inquiries.ListRecent(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	response := map[string]any{
		"inquiries":  inquiries,
		"pagination": p,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
