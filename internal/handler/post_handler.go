package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"adminconsole/internal/console"
)

type ImageResponse struct {
	PostID   int64  `json:"postId"`
	ImageURL string `json:"imageUrl"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, console.PagePosts, h.Console.Posts.List)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	post, err := h.Console.Posts.Detail(r.Context(), id)
	if err != nil {
		writeActionError(w, err)
		return
	}
	h.writeFrame(w, post, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	var form console.PostForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Posts.Update(r.Context(), id, form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Posts.List.View(), http.StatusOK)
}

func (h *Handlers) ApprovePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.Posts.List, h.Console.Posts.RequestApprove(id))
}

func (h *Handlers) DeclinePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	var form console.DeclineForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Posts.Decline(r.Context(), id, form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Posts.List.View(), http.StatusOK)
}

func (h *Handlers) RemovePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.Posts.List, h.Console.Posts.RequestRemove(id))
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.Posts.List, h.Console.Posts.RequestDelete(id))
}

// UploadPostImage accepts a multipart "image" field and points the post at
// the stored object.
func (h *Handlers) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	maxSize := h.Cfg.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("File too large (max %d MB)", maxSize/(1024*1024)), http.StatusRequestEntityTooLarge)
			return
		}
		WriteError(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.Console.Posts.UploadImage(r.Context(), id, header.Filename, file, header.Size)
	if err != nil {
		writeFormError(w, err)
		return
	}

	h.writeFrame(w, ImageResponse{
		PostID:   id,
		ImageURL: url,
		FileName: header.Filename,
		FileSize: header.Size,
	}, http.StatusCreated)
}
