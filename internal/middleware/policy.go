package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

// Policy is one access rule evaluated against the current request. Policies
// compose with All and Any instead of being baked into handlers.
type Policy func(c *gin.Context) error

// All passes when every policy passes; the first failure wins.
func All(policies ...Policy) Policy {
	return func(c *gin.Context) error {
		for _, p := range policies {
			if err := p(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// Any passes when at least one policy passes; the last failure is returned
// when none do.
func Any(policies ...Policy) Policy {
	return func(c *gin.Context) error {
		var lastErr error
		for _, p := range policies {
			if err := p(c); err == nil {
				return nil
			} else {
				lastErr = err
			}
		}
		if lastErr == nil {
			lastErr = apperror.New(apperror.CodeForbidden)
		}
		return lastErr
	}
}

// Enforce turns a policy into gin middleware.
func Enforce(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy(c); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

type PolicySet struct {
	userRepo   repository.UserRepository
	threadRepo repository.ThreadRepository
}

func NewPolicySet(userRepo repository.UserRepository, threadRepo repository.ThreadRepository) *PolicySet {
	return &PolicySet{userRepo: userRepo, threadRepo: threadRepo}
}

// Authenticated requires a user ID in the context.
func (p *PolicySet) Authenticated() Policy {
	return func(c *gin.Context) error {
		_, err := response.GetUserID(c)
		return err
	}
}

// Admin requires the authenticated user to hold the admin role.
func (p *PolicySet) Admin() Policy {
	return func(c *gin.Context) error {
		user, err := p.currentUser(c)
		if err != nil {
			return err
		}
		if !user.IsAdmin() {
			return apperror.New(apperror.CodeAdminRequired)
		}
		return nil
	}
}

// ThreadExists loads the thread named by the :id route parameter and caches
// it in the context for the policies and handler behind it.
func (p *PolicySet) ThreadExists() Policy {
	return func(c *gin.Context) error {
		if _, err := p.currentThread(c); err != nil {
			return err
		}
		return nil
	}
}

// ThreadOwner requires the authenticated user to be the thread's author.
func (p *PolicySet) ThreadOwner() Policy {
	return func(c *gin.Context) error {
		userID, err := response.GetUserID(c)
		if err != nil {
			return err
		}
		thread, err := p.currentThread(c)
		if err != nil {
			return err
		}
		if thread.AuthorID != userID {
			return apperror.New(apperror.CodePermissionDenied)
		}
		return nil
	}
}

func (p *PolicySet) currentUser(c *gin.Context) (*entity.User, error) {
	if cached, ok := c.Get(ContextUser); ok {
		if user, ok := cached.(*entity.User); ok {
			return user, nil
		}
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		return nil, err
	}

	user, err := p.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeUnauthorized)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	c.Set(ContextUser, user)
	return user, nil
}

func (p *PolicySet) currentThread(c *gin.Context) (*entity.Thread, error) {
	if cached, ok := c.Get(ContextThread); ok {
		if thread, ok := cached.(*entity.Thread); ok {
			return thread, nil
		}
	}

	id := c.Param("id")
	if id == "" {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	thread, err := p.threadRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeThreadNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	c.Set(ContextThread, thread)
	return thread, nil
}
