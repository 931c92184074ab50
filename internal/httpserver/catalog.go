package httpserver

import (
	"net/http"
	"strings"

	"alumnimart/internal/domain"
	productrepo "alumnimart/internal/repository/product"
	catalogsvc "alumnimart/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

// schoolScope turns the optional schoolId query parameter into the nullable
// tenant ref used by the catalog: absent means global rows only.
func schoolScope(c *gin.Context) *string {
	if v := strings.TrimSpace(c.Query("schoolId")); v != "" {
		return &v
	}
	return nil
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *handlers) createCategory(c *gin.Context) {
	var in catalogsvc.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	created, err := h.deps.CategorySvc.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *handlers) renameCategory(c *gin.Context) {
	var in renameRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	renamed, err := h.deps.CategorySvc.Rename(c.Request.Context(), currentUser(c), c.Param("id"), in.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, renamed)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	if err := h.deps.CategorySvc.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "category deleted")
}

// Catalog listings degrade to empty collections on persistence errors so a
// storefront page still renders; the failure is logged server-side.
func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.CategorySvc.List(c.Request.Context(), schoolScope(c))
	if err != nil {
		h.logger.Printf("list categories: %v", err)
		categories = nil
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	respondData(c, http.StatusOK, categories)
}

func (h *handlers) createBrand(c *gin.Context) {
	var in catalogsvc.BrandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	created, err := h.deps.BrandSvc.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *handlers) renameBrand(c *gin.Context) {
	var in renameRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	renamed, err := h.deps.BrandSvc.Rename(c.Request.Context(), currentUser(c), c.Param("id"), in.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, renamed)
}

func (h *handlers) deleteBrand(c *gin.Context) {
	if err := h.deps.BrandSvc.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "brand deleted")
}

func (h *handlers) listBrands(c *gin.Context) {
	brands, err := h.deps.BrandSvc.List(c.Request.Context(), schoolScope(c))
	if err != nil {
		h.logger.Printf("list brands: %v", err)
		brands = nil
	}
	if brands == nil {
		brands = []domain.Brand{}
	}
	respondData(c, http.StatusOK, brands)
}

func (h *handlers) createProduct(c *gin.Context) {
	var in catalogsvc.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	created, err := h.deps.ProductSvc.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *handlers) updateProduct(c *gin.Context) {
	var in catalogsvc.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusOK, "invalid request body")
		return
	}
	updated, err := h.deps.ProductSvc.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	if err := h.deps.ProductSvc.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "product deleted")
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, p)
}

func (h *handlers) listProducts(c *gin.Context) {
	filter := productrepo.ListFilter{
		SchoolID:   schoolScope(c),
		CategoryID: strings.TrimSpace(c.Query("categoryId")),
		BrandID:    strings.TrimSpace(c.Query("brandId")),
	}
	products, err := h.deps.ProductSvc.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Printf("list products: %v", err)
		products = nil
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondData(c, http.StatusOK, products)
}
