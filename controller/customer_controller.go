// api/controller/customer_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	registry_errors "github.com/medregistry/api/errors"
	"github.com/medregistry/api/model"
	"github.com/medregistry/api/service"
	"github.com/medregistry/api/util"
	helper_util "github.com/medregistry/api/util/helper"
)

type CustomerController struct {
	customerService service.ICustomerService
}

func NewCustomerController(customerService service.ICustomerService) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

// RegisterRoutes registers the API routes
func (cc *CustomerController) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.POST("", cc.CreateCustomer)
		customers.PUT("/:id", cc.UpdateCustomer)
		customers.DELETE("/:id", cc.DeleteCustomer)
		customers.GET("/:id", cc.GetCustomer)
		customers.GET("", cc.ListCustomers)
	}
}

// CreateCustomer endpoint
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid customer data", registry_errors.ErrInvalidCustomerData)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", registry_errors.ErrUnauthorized)
		return
	}

	createdCustomer, err := cc.customerService.CreateCustomer(c, customer, actorID)
	if err != nil {
		switch {
		case errors.Is(err, registry_errors.ErrCustomerConflict):
			util.RespondWithError(c, http.StatusConflict, "Customer already exists", err)
		case errors.Is(err, registry_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusBadRequest, "Failed to create customer", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdCustomer)
}

// UpdateCustomer endpoint
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	customerID := c.Param("id")
	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid customer data", err)
		return
	}
	customer.ID = customerID
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedCustomer, err := cc.customerService.UpdateCustomer(c, customer, actorID)
	if err != nil {
		if errors.Is(err, registry_errors.ErrCustomerNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Customer not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedCustomer)
}

// DeleteCustomer endpoint
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	customerID := c.Param("id")
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := cc.customerService.DeleteCustomer(c, customerID, actorID); err != nil {
		if errors.Is(err, registry_errors.ErrCustomerNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Customer not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCustomer endpoint
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	customerID := c.Param("id")

	customer, err := cc.customerService.GetCustomer(c, customerID)
	if err != nil {
		if errors.Is(err, registry_errors.ErrCustomerNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Customer not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get customer", err)
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ListCustomers endpoint
func (cc *CustomerController) ListCustomers(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", registry_errors.ErrInvalidPagination)
		return
	}

	customers, err := cc.customerService.ListCustomers(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list customers", err)
		return
	}

	c.JSON(http.StatusOK, customers)
}
