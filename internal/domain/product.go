package domain

// UploadedImage identifies an image that was successfully pushed to the
// remote media library. It only lives for the duration of one pipeline run.
type UploadedImage struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// ImageRef references an uploaded image by its media library ID.
// The store resolves the rest of the image data from the ID.
type ImageRef struct {
	ID int64 `json:"id"`
}

// CategoryRef references a product category by its ID.
type CategoryRef struct {
	ID int `json:"id"`
}

// ProductPayload is the product-creation request body. Its shape is the one
// structural contract the pipeline imposes on the record creator: the
// first entry of Images is the featured image, the rest form the gallery
// in upload order.
type ProductPayload struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Type         string        `json:"type"`
	RegularPrice string        `json:"regular_price"`
	Categories   []CategoryRef `json:"categories"`
	SKU          string        `json:"sku,omitempty"`
	Images       []ImageRef    `json:"images"`
}

// CreatedProduct holds the remote data returned for a successfully
// created product.
type CreatedProduct struct {
	ID        int64  `json:"id"`
	Permalink string `json:"permalink"`
}

// Category is a product category as reported by the store, including its
// parent link so callers can rebuild the category hierarchy.
type Category struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Parent int    `json:"parent"`
	Count  int    `json:"count"`
}
