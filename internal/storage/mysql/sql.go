package mysql

// Names and slugs are unique so concurrent populate runs collapse onto one row per place.
const createPlacesSQL = `
CREATE TABLE IF NOT EXISTS places (
  id          CHAR(36)      NOT NULL,
  slug        VARCHAR(191)  NOT NULL,
  name        VARCHAR(191)  NOT NULL,
  location    VARCHAR(255)  NOT NULL DEFAULT '',
  description TEXT          NOT NULL,
  cost        DOUBLE        NOT NULL DEFAULT 0,
  category    VARCHAR(64)   NOT NULL DEFAULT '',
  rating      DOUBLE        NOT NULL DEFAULT 0,
  image       VARCHAR(255)  NOT NULL DEFAULT '',
  lat         DOUBLE        NULL,
  lon         DOUBLE        NULL,
  created_at  TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  UNIQUE KEY uq_places_name (name),
  UNIQUE KEY uq_places_slug (slug),
  KEY idx_places_category (category)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

// The no-op update turns a duplicate into zero affected rows instead of an error.
const insertPlaceSQL = `
INSERT INTO places
  (id, slug, name, location, description, cost, category, rating, image, lat, lon)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE id = id
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectPlaceCols = `
SELECT id, slug, name, location, description, cost, category, rating, image, lat, lon
FROM places
`

const getPlaceBySlugSQL = selectPlaceCols + `WHERE slug = ?`
