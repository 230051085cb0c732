package handlers

import (
	"errors"
	"itemplane/internal/serializer"
	"itemplane/internal/store"
	"itemplane/pkg/api"
	"net/http"
)

// ListItems handles GET /items/ and GET /read/.
// It returns every stored item; an empty store yields [].
func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListItems(r.Context())
	if err != nil {
		h.serverError(w, r, "Failed to list items", err)
		return
	}
	h.respondJson(w, http.StatusOK, serializer.ToAPIList(items))
}

// CreateItem handles POST /items/ and POST /write/.
// Nothing is written unless the payload validates.
func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readBody(r)
	if err != nil {
		h.rejectPayload(w, r, err)
		return
	}

	item, err := h.serializer.Decode(body, store.Item{}, false)
	if err != nil {
		h.rejectPayload(w, r, err)
		return
	}

	tx, err := h.store.BeginTx(ctx)
	if err != nil {
		h.serverError(w, r, "Failed to begin transaction", err)
		return
	}
	defer tx.Rollback()

	if err := h.store.CreateItem(ctx, tx, &item); err != nil {
		h.serverError(w, r, "Failed to create item", err)
		return
	}

	if err := tx.Commit(); err != nil {
		h.serverError(w, r, "Failed to commit transaction", err)
		return
	}

	h.respondJson(w, http.StatusCreated, serializer.ToAPI(item))
}

// GetItem handles GET /items/{id}/.
func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.httpError(w, api.DetailNotFound, http.StatusNotFound)
		return
	}

	item, err := h.store.GetItemByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.httpError(w, api.DetailNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, "Failed to get item", err)
		return
	}

	h.respondJson(w, http.StatusOK, serializer.ToAPI(*item))
}

// UpdateItem handles PUT /items/{id}/. Every required field must be supplied.
func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	h.updateItem(w, r, false)
}

// PartialUpdateItem handles PATCH /items/{id}/. Omitted fields keep their value.
func (h *Handlers) PartialUpdateItem(w http.ResponseWriter, r *http.Request) {
	h.updateItem(w, r, true)
}

// updateItem locks the row, merges the payload onto it and saves the result.
// The lookup comes first, so an unknown id is 404 even with an invalid body.
func (h *Handlers) updateItem(w http.ResponseWriter, r *http.Request, partial bool) {
	ctx := r.Context()

	id, ok := itemID(r)
	if !ok {
		h.httpError(w, api.DetailNotFound, http.StatusNotFound)
		return
	}

	body, err := readBody(r)
	if err != nil {
		h.rejectPayload(w, r, err)
		return
	}

	tx, err := h.store.BeginTx(ctx)
	if err != nil {
		h.serverError(w, r, "Failed to begin transaction", err)
		return
	}
	defer tx.Rollback()

	current, err := h.store.GetItemForUpdate(ctx, tx, id)
	if errors.Is(err, store.ErrNotFound) {
		h.httpError(w, api.DetailNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, "Failed to load item", err)
		return
	}

	item, err := h.serializer.Decode(body, *current, partial)
	if err != nil {
		h.rejectPayload(w, r, err)
		return
	}

	if err := h.store.UpdateItem(ctx, tx, &item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.httpError(w, api.DetailNotFound, http.StatusNotFound)
			return
		}
		h.serverError(w, r, "Failed to update item", err)
		return
	}

	if err := tx.Commit(); err != nil {
		h.serverError(w, r, "Failed to commit transaction", err)
		return
	}

	h.respondJson(w, http.StatusOK, serializer.ToAPI(item))
}

// DeleteItem handles DELETE /items/{id}/ and answers 204 with no body.
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := itemID(r)
	if !ok {
		h.httpError(w, api.DetailNotFound, http.StatusNotFound)
		return
	}

	tx, err := h.store.BeginTx(ctx)
	if err != nil {
		h.serverError(w, r, "Failed to begin transaction", err)
		return
	}
	defer tx.Rollback()

	if err := h.store.DeleteItem(ctx, tx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.httpError(w, api.DetailNotFound, http.StatusNotFound)
			return
		}
		h.serverError(w, r, "Failed to delete item", err)
		return
	}

	if err := tx.Commit(); err != nil {
		h.serverError(w, r, "Failed to commit transaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
