package controllers

import (
	"log"
	"net/http"

	"github.com/heshan2021/ai-pms-saas-backend/models"
	"github.com/heshan2021/ai-pms-saas-backend/services"
	"github.com/heshan2021/ai-pms-saas-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type CreateRoomRequest struct {
	Name   string            `json:"name"`
	Status models.RoomStatus `json:"status"`
}

type UpdateRoomRequest struct {
	Name   *string            `json:"name"`
	Status *models.RoomStatus `json:"status"`
}

// POST /api/rooms
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("CreateRoom: bad payload: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	room, err := ctrl.RoomSvc.Create(req.Name, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Room created successfully",
		"room":    room,
	})
}

// GET /api/rooms
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// PUT /api/rooms/:id (PATCH alias registered in routes)
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("UpdateRoom %d: bad payload: %v", id, err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	room, err := ctrl.RoomSvc.Update(id, req.Name, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Room updated successfully",
		"room":    room,
	})
}

// DELETE /api/rooms/:id
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.RoomSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
