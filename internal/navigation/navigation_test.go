package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKebabCamelRoundTrip(t *testing.T) {
	for page := range pages {
		kebab := ToKebabCase(string(page))
		assert.Equal(t, string(page), ToCamelCase(kebab), kebab)
	}

	assert.Equal(t, "admin-dashboard", ToKebabCase("adminDashboard"))
	assert.Equal(t, "my-orders", ToKebabCase("myOrders"))
	assert.Equal(t, "searchResults", ToCamelCase("search-results"))
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "/", PathFor(PageHome))
	assert.Equal(t, "/search-results", PathFor(PageSearchResults))
	assert.Equal(t, "/admin-categories", PathFor(PageAdminCategories))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Organic Tomatoes":           "organic-tomatoes",
		"  A2 Desi Cow Ghee (500ml) ": "a2-desi-cow-ghee-500ml",
		"Jaggery -- Powder!!":        "jaggery-powder",
		"Ragi":                       "ragi",
		"!!!":                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
	assert.Equal(t, "/product/organic-tomatoes", ProductPath("Organic Tomatoes"))
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Route{Page: PageHome}},
		{"", Route{Page: PageHome}},
		{"/cart", Route{Page: PageCart}},
		{"/my-orders", Route{Page: PageMyOrders}},
		{"/admin-dashboard/", Route{Page: PageAdminDashboard}},
		{"/search-results?q=rice", Route{Page: PageSearchResults}},
		{"/product/organic-tomatoes", Route{Page: PageProductDetail, ProductSlug: "organic-tomatoes"}},
		{"/product/", Route{Page: PageHome}},
		{"/cart/?ref=x", Route{Page: PageCart}},
		{"/my-orders/#latest", Route{Page: PageMyOrders}},
		{"/product/ragi-flour/?utm=1", Route{Page: PageProductDetail, ProductSlug: "ragi-flour"}},
		{"/product/?utm=1", Route{Page: PageHome}},
		{"/does-not-exist", Route{Page: PageHome}},
		{"/blog", Route{Page: PageHome}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePath(tt.path))
		})
	}
}

func TestPageFlags(t *testing.T) {
	assert.True(t, PageAdminOrders.IsAdmin())
	assert.False(t, PageAccount.IsAdmin())
	assert.True(t, PageWishlist.Valid())
	assert.False(t, Page("blog").Valid())
}
