package service

import (
	"net/http"

	"github.com/sangkips/restopos/pkg/apperror"
)

// Business rule failures shared by handlers and tests.
var (
	ErrNoLocation         = apperror.NewWarning("Aucune table sélectionnée")
	ErrEmptyCart          = apperror.NewBadRequestError("Le panier est vide")
	ErrNonPositiveTotal   = apperror.NewBadRequestError("Le total doit être positif")
	ErrNoOpenSession      = apperror.NewAppError(http.StatusConflict, "Aucune session de caisse ouverte")
	ErrSessionAlreadyOpen = apperror.NewConflictError("Une session de caisse est déjà ouverte")
	ErrAlreadyPaid        = apperror.NewConflictError("Salaire déjà payé pour cette période")
	ErrNothingToPay       = apperror.NewWarning("Aucun montant à payer pour cette période")
	ErrAlreadyClockedIn   = apperror.NewConflictError("Employé déjà pointé")
	ErrNotClockedIn       = apperror.NewConflictError("Employé non pointé")
	ErrInvalidTransition  = apperror.NewConflictError("Changement de statut non autorisé")
	ErrAlreadyRefunded    = apperror.NewConflictError("Vente déjà remboursée")
	ErrInvalidPin         = apperror.NewAppError(http.StatusUnauthorized, "Code PIN incorrect")
	ErrAssistantDisabled  = apperror.NewAppError(http.StatusServiceUnavailable, "Assistant non configuré")
)
