package generator

import (
	"github.com/vitebski/northwind-seeder/internal/analyzer"
	"github.com/vitebski/northwind-seeder/pkg/models"
)

// Literal sample rows, values in column declaration order. nil is NULL.

var categoryRows = []models.Row{
	{1, "Beverages", "Soft drinks, coffees, teas, beers, and ales"},
	{2, "Condiments", "Sweet and savory sauces, relishes, spreads, and seasonings"},
	{3, "Dairy Products", "Cheeses"},
	{4, "Grains/Cereals", "Breads, crackers, pasta, and cereal"},
	{5, "Meat/Poultry", "Prepared meats"},
	{6, "Produce", "Dried fruit and bean curd"},
	{7, "Seafood", "Seaweed and fish"},
	{8, "Confections", "Desserts, candies, and sweet breads"},
}

var supplierRows = []models.Row{
	{1, "Exotic Liquids", "Charlotte Cooper", "Purchasing Manager", "49 Gilbert St.", "London", nil, "EC1 4SD", "UK", "(171) 555-2222", nil},
	{2, "New Orleans Cajun Delights", "Shelley Burke", "Order Administrator", "P.O. Box 78934", "New Orleans", "LA", "70117", "USA", "(100) 555-4822", nil},
	{3, "Grandma Kelly's Homestead", "Regina Murphy", "Sales Representative", "707 Oxford Rd.", "Ann Arbor", "MI", "48104", "USA", "(313) 555-5735", "(313) 555-3349"},
	{4, "Tokyo Traders", "Yoshi Nagase", "Marketing Manager", "9-8 Sekimai Musashino-shi", "Tokyo", nil, "100", "Japan", "(03) 3555-5011", nil},
	{5, "Cooperativa de Quesos", "Antonio del Valle Saavedra", "Export Administrator", "Calle del Rosal 4", "Oviedo", "Asturias", "33007", "Spain", "(98) 598 76 54", nil},
}

// ProductID, ProductName, SupplierID, CategoryID, QuantityPerUnit, UnitPrice,
// UnitsInStock, UnitsOnOrder, ReorderLevel, Discontinued
var productRows = []models.Row{
	{1, "Chai", 1, 1, "10 boxes x 20 bags", 18.00, 39, 0, 10, false},
	{2, "Chang", 1, 1, "24 - 12 oz bottles", 19.00, 17, 40, 25, false},
	{3, "Aniseed Syrup", 1, 2, "12 - 550 ml bottles", 10.00, 13, 70, 25, false},
	{4, "Chef Anton's Cajun Seasoning", 2, 2, "48 - 6 oz jars", 22.00, 53, 0, 0, false},
	{5, "Chef Anton's Gumbo Mix", 2, 2, "36 boxes", 21.35, 0, 0, 0, true},
	{6, "Grandma's Boysenberry Spread", 3, 2, "12 - 8 oz jars", 25.00, 120, 0, 25, false},
	{7, "Uncle Bob's Organic Dried Pears", 3, 7, "12 - 1 lb pkgs.", 30.00, 15, 0, 10, false},
	{8, "Northwoods Cranberry Sauce", 3, 2, "12 - 12 oz jars", 40.00, 6, 0, 0, false},
	{9, "Mishi Kobe Niku", 4, 6, "18 - 500 g pkgs.", 97.00, 29, 0, 0, true},
	{10, "Ikura", 4, 8, "12 - 200 ml jars", 31.00, 31, 0, 0, false},
}

var customerRows = []models.Row{
	{"ALFKI", "Alfreds Futterkiste", "Maria Anders", "Sales Representative", "Obere Str. 57", "Berlin", nil, "12209", "Germany", "030-0074321", "030-0076545"},
	{"ANATR", "Ana Trujillo Emparedados y helados", "Ana Trujillo", "Owner", "Avda. de la Constitución 2222", "México D.F.", nil, "05021", "Mexico", "(5) 555-4729", "(5) 555-3745"},
	{"ANTON", "Antonio Moreno Taquería", "Antonio Moreno", "Owner", "Mataderos 2312", "México D.F.", nil, "05023", "Mexico", "(5) 555-3932", nil},
	{"AROUT", "Around the Horn", "Thomas Hardy", "Sales Representative", "120 Hanover Sq.", "London", nil, "WA1 1DP", "UK", "(171) 555-7788", "(171) 555-6750"},
	{"BERGS", "Berglunds snabbköp", "Christina Berglund", "Order Administrator", "Berguvsvägen 8", "Luleå", nil, "S-958 22", "Sweden", "0921-12 34 65", "0921-12 34 67"},
}

var employeeRows = []models.Row{
	{1, "Davolio", "Nancy", "Sales Representative", "Ms.", "1948-12-08", "1992-05-01", "507 - 20th Ave. E.", "Seattle", "WA", "98122", "USA", "(206) 555-9857", "5467",
		"Education includes a BA in psychology from Colorado State University in 1970.", 2},
	{2, "Fuller", "Andrew", "Vice President, Sales", "Dr.", "1952-02-19", "1992-08-14", "908 W. Capital Way", "Tacoma", "WA", "98401", "USA", "(206) 555-9482", "3457",
		"Andrew received his BTS commercial in 1974 and a Ph.D. in international marketing from the University of Dallas in 1981.", nil},
	{3, "Leverling", "Janet", "Sales Representative", "Ms.", "1963-08-30", "1992-04-01", "722 Moss Bay Blvd.", "Kirkland", "WA", "98033", "USA", "(206) 555-3412", "3355",
		"Janet has a BS degree in chemistry from Boston College (1984).", 2},
	{4, "Peacock", "Margaret", "Sales Representative", "Mrs.", "1937-09-19", "1993-05-03", "4110 Old Redmond Rd.", "Redmond", "WA", "98052", "USA", "(206) 555-8122", "5176",
		"Margaret holds a BA in English literature from Concordia College (1958) and an MA from the American Institute of Culinary Arts (1966).", 2},
	{5, "Buchanan", "Steven", "Sales Manager", "Mr.", "1955-03-04", "1993-10-17", "14 Garrett Hill", "London", nil, "SW1 8JR", "UK", "(71) 555-4848", "3453",
		"Steven Buchanan graduated from St. Andrews University, Scotland, with a BSC degree in 1976.", 2},
}

var orderRows = []models.Row{
	{10248, "ALFKI", 1, "1996-07-04", "1996-08-01", "1996-07-16", 3, 32.38, "Alfreds Futterkiste", "Obere Str. 57", "Berlin", nil, "12209", "Germany"},
	{10249, "ANATR", 2, "1996-07-05", "1996-08-16", "1996-07-10", 1, 11.61, "Ana Trujillo Emparedados y helados", "Avda. de la Constitución 2222", "México D.F.", nil, "05021", "Mexico"},
	{10250, "ANTON", 3, "1996-07-08", "1996-08-05", "1996-07-12", 2, 65.83, "Antonio Moreno Taquería", "Mataderos 2312", "México D.F.", nil, "05023", "Mexico"},
	{10251, "AROUT", 1, "1996-07-08", "1996-08-05", "1996-07-15", 1, 41.34, "Around the Horn", "120 Hanover Sq.", "London", nil, "WA1 1DP", "UK"},
	{10252, "BERGS", 2, "1996-07-09", "1996-08-06", "1996-07-11", 2, 51.30, "Berglunds snabbköp", "Berguvsvägen 8", "Luleå", nil, "S-958 22", "Sweden"},
}

// OrderID, ProductID, UnitPrice, Quantity, Discount
var orderDetailRows = []models.Row{
	{10248, 1, 18.00, 12, 0.0},
	{10248, 2, 19.00, 10, 0.0},
	{10248, 3, 10.00, 5, 0.0},
	{10249, 4, 22.00, 9, 0.0},
	{10249, 5, 21.35, 40, 0.0},
	{10250, 6, 25.00, 10, 0.15},
	{10250, 7, 30.00, 35, 0.15},
	{10250, 8, 40.00, 15, 0.15},
	{10251, 1, 18.00, 6, 0.05},
	{10251, 2, 19.00, 15, 0.05},
	{10252, 3, 10.00, 20, 0.05},
	{10252, 4, 22.00, 40, 0.0},
}

var literalRows = map[string][]models.Row{
	analyzer.Categories:   categoryRows,
	analyzer.Suppliers:    supplierRows,
	analyzer.Products:     productRows,
	analyzer.Customers:    customerRows,
	analyzer.Employees:    employeeRows,
	analyzer.Orders:       orderRows,
	analyzer.OrderDetails: orderDetailRows,
}

// LiteralRows returns a copy of the fixed sample rows of a table
func LiteralRows(table string) []models.Row {
	src := literalRows[table]
	rows := make([]models.Row, len(src))
	for i, row := range src {
		rows[i] = append(models.Row(nil), row...)
	}
	return rows
}
