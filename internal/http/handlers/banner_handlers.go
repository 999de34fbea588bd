package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/commerce-admin/internal/models"
	repo "github.com/rogerio-castellano/commerce-admin/internal/repo"
)

// CreateBannerHandler godoc
// @Summary Create a promo banner
// @Tags banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param banner body BannerRequest true "Banner to add"
// @Success 201 {object} BannerResponse
// @Failure 400 {object} map[string]string
// @Router /banners [post]
func CreateBannerHandler(w http.ResponseWriter, r *http.Request) {
	var req BannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateBanner(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	banner := models.Banner{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Link:      req.Link,
		Active:    req.Active,
		Position:  req.Position,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	created, err := bannerRepo.Create(banner)
	if err != nil {
		http.Error(w, "could not create banner", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newBannerResponse(created))
}

// GetBannersHandler godoc
// @Summary List all banners ordered by position
// @Tags banners
// @Produce json
// @Success 200 {array} BannerResponse
// @Failure 500 {string} string "Internal error"
// @Router /banners [get]
func GetBannersHandler(w http.ResponseWriter, r *http.Request) {
	banners, err := bannerRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch banners", http.StatusInternalServerError)
		return
	}
	response := make([]BannerResponse, len(banners))
	for i, b := range banners {
		response[i] = newBannerResponse(b)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetBannerByIDHandler godoc
// @Summary Get banner by ID
// @Tags banners
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} BannerResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /banners/{id} [get]
func GetBannerByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	banner, err := bannerRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrBannerNotFound) {
			http.Error(w, "banner not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch banner", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newBannerResponse(banner))
}

// UpdateBannerHandler godoc
// @Summary Update a banner
// @Tags banners
// @Accept json
// @Produce json
// @Param id path string true "Banner ID"
// @Param banner body BannerRequest true "Updated banner"
// @Success 200 {object} BannerResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /banners/{id} [put]
// @Security BearerAuth
func UpdateBannerHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req BannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateBanner(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	banner := models.Banner{
		ID:        id,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Link:      req.Link,
		Active:    req.Active,
		Position:  req.Position,
		UpdatedAt: time.Now().UTC(),
	}
	updated, err := bannerRepo.Update(banner)
	if err != nil {
		if errors.Is(err, repo.ErrBannerNotFound) {
			http.Error(w, "banner not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update banner", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newBannerResponse(updated))
}

// DeleteBannerHandler godoc
// @Summary Delete a banner
// @Tags banners
// @Param id path string true "Banner ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /banners/{id} [delete]
// @Security BearerAuth
func DeleteBannerHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := bannerRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrBannerNotFound) {
			http.Error(w, "banner not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete banner", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
