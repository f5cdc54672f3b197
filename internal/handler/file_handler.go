package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

type FileHandler struct {
	service  service.FileService
	userRepo repository.UserRepository
}

func NewFileHandler(service service.FileService, userRepo repository.UserRepository) *FileHandler {
	return &FileHandler{service: service, userRepo: userRepo}
}

func (h *FileHandler) Upload(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, apperror.New(apperror.CodeBadRequest))
		return
	}
	defer file.Close()

	isPublic := c.PostForm("isPublic") == "true"

	uploaded, err := h.service.Upload(c.Request.Context(), userID, header.Filename, header.Header.Get("Content-Type"), header.Size, isPublic, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, uploaded, "فایل با موفقیت بارگذاری شد")
}

func (h *FileHandler) GetByID(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, file, "")
}

func (h *FileHandler) GetMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindingError(c, err)
		return
	}

	files, pagination, err := h.service.GetMine(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, files, pagination)
}

func (h *FileHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID, isAdmin(c, h.userRepo)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "فایل با موفقیت حذف شد")
}

func (h *FileHandler) Attach(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.AttachFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	attachment, err := h.service.Attach(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, attachment, "فایل با موفقیت پیوست شد")
}

func (h *FileHandler) GetAttachments(c *gin.Context) {
	attachments, err := h.service.GetAttachments(c.Request.Context(), c.Param("entityType"), c.Param("entityId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, attachments, "")
}

func (h *FileHandler) Detach(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Detach(c.Request.Context(), c.Param("id"), userID, isAdmin(c, h.userRepo)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "پیوست فایل حذف شد")
}

func (h *FileHandler) CreateFolder(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	folder, err := h.service.CreateFolder(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, folder, "پوشه با موفقیت ایجاد شد")
}

func (h *FileHandler) GetFolders(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var parentID *string
	if v := c.Query("parentId"); v != "" {
		parentID = &v
	}

	folders, err := h.service.GetFolders(c.Request.Context(), userID, parentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, folders, "")
}

func (h *FileHandler) DeleteFolder(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteFolder(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "پوشه با موفقیت حذف شد")
}

func (h *FileHandler) AddFolderFile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.AddFolderFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	entry, err := h.service.AddFolderFile(c.Request.Context(), c.Param("id"), userID, req.FileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, entry, "فایل به پوشه اضافه شد")
}

func (h *FileHandler) GetFolderFiles(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	files, err := h.service.GetFolderFiles(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, files, "")
}

func (h *FileHandler) RemoveFolderFile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.RemoveFolderFile(c.Request.Context(), c.Param("id"), userID, c.Param("fileId")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "فایل از پوشه حذف شد")
}
