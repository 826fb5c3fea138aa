package entity

import "time"

type Order struct {
	ID        int         `json:"id"`
	SellerID  int         `json:"seller_id"`
	CreatedAt time.Time   `json:"created_at"`
	Total     float64     `json:"total"`
	Lines     []OrderLine `json:"lines"`
}

type OrderLine struct {
	ID          int    `json:"id"`
	OrderID     int    `json:"order_id"`
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

/*
Mysql Tables

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	seller_id INT NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	total DOUBLE NOT NULL
);

CREATE TABLE order_lines (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL REFERENCES orders(id),
	product_id INT NOT NULL REFERENCES products(id),
	quantity INT NOT NULL
);
*/
