package controllers

import (
	"net/http"

	dbpkg "alomana/db"
	"alomana/models"
	"alomana/occurrences"

	"github.com/gin-gonic/gin"
)

type StatusUpdateRequest struct {
	Status string `json:"status" form:"status"`
}

type NoteRequest struct {
	Text string `json:"text" form:"text"`
}

type MessageRequest struct {
	Text string `json:"text" form:"text"`
}

// GET /api/occurrences?status=&q=
// Equipe de triagem enxerga tudo (com filtros); usuário logado enxerga só as
// próprias ocorrências; anônimo não enxerga nada.
func GetOccurrences(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	principal := PrincipalFromContext(c)
	service := occurrences.NewService(db)

	switch {
	case principal.IsStaff():
		list, err := service.ListForStaff(principal, c.Query("status"), c.Query("q"))
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondSuccess(c, gin.H{"occurrences": list})
	case principal.IsReporter():
		list, err := service.ListForReporter(principal)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondSuccess(c, gin.H{"occurrences": list})
	default:
		RespondError(c, "unauthorized", http.StatusUnauthorized)
	}
}

// GET /api/occurrences/:id
func GetOccurrenceByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	principal := PrincipalFromContext(c)
	if !principal.IsStaff() && !principal.IsReporter() {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	detail, err := occurrences.NewService(db).GetDetail(principal, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	RespondSuccess(c, detail)
}

// POST /api/occurrences/:id/status (triagem)
func UpdateOccurrenceStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	admin, ok := CurrentAdmin(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	service := occurrences.NewService(db)
	changed, err := service.TransitionStatus(models.StaffPrincipal(admin.ID), id, req.Status)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"changed": changed, "status": req.Status})
}

// POST /api/occurrences/:id/notes (triagem)
func CreateOccurrenceNote(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	admin, ok := CurrentAdmin(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	note, err := occurrences.NewService(db).AddStaffNote(models.StaffPrincipal(admin.ID), id, req.Text)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// POST /api/occurrences/:id/messages (usuário titular)
func CreateOccurrenceMessage(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	user, ok := CurrentUser(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	message, err := occurrences.NewService(db).AddReporterMessage(models.ReporterPrincipal(user.ID), id, req.Text)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}
