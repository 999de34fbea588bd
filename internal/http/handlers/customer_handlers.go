package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	models "github.com/rogerio-castellano/commerce-admin/internal/models"
)

// GetCustomersHandler godoc
// @Summary List customer accounts
// @Description Returns all users with the customer role. Password hashes never leave the server.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CustomerResponse
// @Failure 500 {string} string "Internal error"
// @Router /customers [get]
func GetCustomersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch customers: %v", err)
		http.Error(w, "could not fetch customers", http.StatusInternalServerError)
		return
	}

	response := make([]CustomerResponse, 0, len(users))
	for _, u := range users {
		if u.Role != models.RoleCustomer {
			continue
		}
		response = append(response, CustomerResponse{
			Id:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			CreatedAt: u.CreatedAt.Format(timeLayout),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
