package productRepository

const (
	queryProductColumns = `
		SELECT
			p.id,
			p.name,
			p.description,
			p.price,
			p.category_id,
			c.name AS category_name,
			p.brand,
			p.image_url,
			p.stock_quantity,
			p.is_available,
			p.rating,
			p.attributes,
			p.created_at,
			p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	`

	queryCountProducts = `
		SELECT COUNT(*)
		FROM products p
	`

	queryGetProductByID = queryProductColumns + `
		WHERE p.id = :id
	`

	querySearchRelevance = `
		CASE WHEN p.name ILIKE :search_text THEN 0 ELSE 1 END ASC
	`

	queryGetAllCategories = `
		SELECT
			c.id,
			c.name,
			c.description,
			c.created_at,
			COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.description, c.created_at
		ORDER BY c.name ASC
	`

	queryGetCategoryByID = `
		SELECT
			c.id,
			c.name,
			c.description,
			c.created_at,
			(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count
		FROM categories c
		WHERE c.id = :id
	`

	queryFindCategoryByName = `
		SELECT
			c.id,
			c.name,
			c.description,
			c.created_at,
			(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count
		FROM categories c
		WHERE c.name ILIKE :name
		ORDER BY c.name ASC
		LIMIT 1
	`
)
