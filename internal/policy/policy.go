package policy

import "strings"

// Papéis reconhecidos no condomínio.
const (
	RoleMorador    = "MORADOR"
	RoleGestao     = "GESTAO"
	RoleSindico    = "SINDICO"
	RoleSubsindico = "SUBSINDICO"
	RoleAdmin      = "ADMIN"
)

// Action identifica uma operação sujeita a verificação de papel.
type Action string

const (
	ActionManageUsers          Action = "manage_users"
	ActionChangeRequestStatus  Action = "change_request_status"
	ActionDeleteRequest        Action = "delete_request"
	ActionRespondOccurrence    Action = "respond_occurrence"
	ActionDeleteOccurrence     Action = "delete_occurrence"
	ActionManageVotings        Action = "manage_votings"
	ActionManageNotices        Action = "manage_notices"
	ActionManageDocuments      Action = "manage_documents"
	ActionCancelAnyReservation Action = "cancel_any_reservation"
	ActionReservationExempt    Action = "reservation_date_exempt"
	ActionDeleteNotification   Action = "delete_notification"
)

var managementRoles = map[string]struct{}{
	RoleAdmin:      {},
	RoleGestao:     {},
	RoleSindico:    {},
	RoleSubsindico: {},
}

// allowedRoles associa cada ação ao conjunto de papéis autorizados.
// nil significa "qualquer papel de gestão".
var allowedRoles = map[Action]map[string]struct{}{
	ActionManageUsers:       {RoleAdmin: {}},
	ActionDeleteOccurrence:  {RoleAdmin: {}},
	ActionReservationExempt: {RoleAdmin: {}, RoleSindico: {}},

	ActionChangeRequestStatus:  nil,
	ActionDeleteRequest:        nil,
	ActionRespondOccurrence:    nil,
	ActionManageVotings:        nil,
	ActionManageNotices:        nil,
	ActionManageDocuments:      nil,
	ActionCancelAnyReservation: nil,
	ActionDeleteNotification:   nil,
}

// NormalizeRole padroniza o papel em maiúsculas.
func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

// IsValidRole indica se o papel é reconhecido.
func IsValidRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleMorador, RoleGestao, RoleSindico, RoleSubsindico, RoleAdmin:
		return true
	}
	return false
}

// IsManagement indica se o papel tem privilégios de gestão.
func IsManagement(role string) bool {
	_, ok := managementRoles[NormalizeRole(role)]
	return ok
}

// Allowed decide se o papel pode executar a ação.
func Allowed(role string, action Action) bool {
	roles, known := allowedRoles[action]
	if !known {
		return false
	}
	if roles == nil {
		return IsManagement(role)
	}
	_, ok := roles[NormalizeRole(role)]
	return ok
}
