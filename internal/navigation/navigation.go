// Package navigation maps storefront pages to URL paths and back.
package navigation

import (
	"regexp"
	"strings"
)

type Page string

const (
	PageHome            Page = "home"
	PageCart            Page = "cart"
	PageLogin           Page = "login"
	PageRegister        Page = "register"
	PageCategory        Page = "category"
	PageProductDetail   Page = "productDetail"
	PageCheckout        Page = "checkout"
	PageSuccess         Page = "success"
	PageAbout           Page = "about"
	PageContact         Page = "contact"
	PageSearchResults   Page = "searchResults"
	PageWishlist        Page = "wishlist"
	PageMyOrders        Page = "myOrders"
	PageAccount         Page = "account"
	PageAdminDashboard  Page = "adminDashboard"
	PageAdminProducts   Page = "adminProducts"
	PageAdminUsers      Page = "adminUsers"
	PageAdminRoles      Page = "adminRoles"
	PageAdminOrders     Page = "adminOrders"
	PageAdminAnalytics  Page = "adminAnalytics"
	PageAdminReviews    Page = "adminReviews"
	PageAdminCategories Page = "adminCategories"
)

var pages = map[Page]bool{
	PageHome: true, PageCart: true, PageLogin: true, PageRegister: true,
	PageCategory: true, PageProductDetail: true, PageCheckout: true,
	PageSuccess: true, PageAbout: true, PageContact: true,
	PageSearchResults: true, PageWishlist: true, PageMyOrders: true,
	PageAccount: true, PageAdminDashboard: true, PageAdminProducts: true,
	PageAdminUsers: true, PageAdminRoles: true, PageAdminOrders: true,
	PageAdminAnalytics: true, PageAdminReviews: true, PageAdminCategories: true,
}

const productPrefix = "product/"

var (
	camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	kebabBoundary = regexp.MustCompile(`-([a-z])`)
	nonSlug       = regexp.MustCompile(`[^a-z0-9]+`)
)

func (p Page) Valid() bool {
	return pages[p]
}

func (p Page) IsAdmin() bool {
	return strings.HasPrefix(string(p), "admin")
}

func ToKebabCase(s string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(s, "$1-$2"))
}

func ToCamelCase(s string) string {
	return kebabBoundary.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// PathFor returns the URL path a page is shown under.
func PathFor(p Page) string {
	if p == PageHome || p == "" {
		return "/"
	}
	return "/" + ToKebabCase(string(p))
}

// Slugify lowercases name and collapses every run of non-alphanumerics into a
// single hyphen, trimming hyphens at either end.
func Slugify(name string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func ProductPath(name string) string {
	return "/" + productPrefix + Slugify(name)
}

// Route is a parsed URL path. ProductSlug is set only for product paths, whose
// product still has to be looked up in the catalog.
type Route struct {
	Page        Page
	ProductSlug string
}

// ParsePath resolves a URL path. Unknown pages resolve to home.
func ParsePath(path string) Route {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return Route{Page: PageHome}
	}

	if strings.HasPrefix(path, productPrefix) {
		slug := strings.TrimPrefix(path, productPrefix)
		if slug == "" {
			return Route{Page: PageHome}
		}
		return Route{Page: PageProductDetail, ProductSlug: slug}
	}

	page := Page(ToCamelCase(path))
	if !page.Valid() {
		return Route{Page: PageHome}
	}
	return Route{Page: page}
}
