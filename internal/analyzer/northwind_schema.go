package analyzer

import "github.com/vitebski/northwind-seeder/pkg/models"

// Table names of the Northwind demo schema
const (
	Categories   = "Categories"
	Suppliers    = "Suppliers"
	Products     = "Products"
	Customers    = "Customers"
	Employees    = "Employees"
	Orders       = "Orders"
	OrderDetails = "Order Details"
)

// NorthwindSchema returns the table definitions in creation order.
// Referenced tables come before the tables referencing them.
func NorthwindSchema() []models.Table {
	return []models.Table{
		{
			Name: Categories,
			Columns: []models.Column{
				primary(column("CategoryID", "INTEGER")),
				required(varchar("CategoryName", 15)),
				column("Description", "TEXT"),
			},
		},
		{
			Name: Suppliers,
			Columns: append([]models.Column{
				primary(column("SupplierID", "INTEGER")),
				required(varchar("CompanyName", 40)),
			}, contactColumns()...),
		},
		{
			Name: Products,
			Columns: []models.Column{
				primary(column("ProductID", "INTEGER")),
				required(varchar("ProductName", 40)),
				column("SupplierID", "INTEGER"),
				column("CategoryID", "INTEGER"),
				varchar("QuantityPerUnit", 20),
				column("UnitPrice", "DECIMAL(10,4)"),
				column("UnitsInStock", "SMALLINT"),
				column("UnitsOnOrder", "SMALLINT"),
				column("ReorderLevel", "SMALLINT"),
				column("Discontinued", "BOOLEAN"),
			},
			ForeignKeys: []models.ForeignKey{
				references(Products, "CategoryID", Categories, "CategoryID"),
				references(Products, "SupplierID", Suppliers, "SupplierID"),
			},
		},
		{
			Name: Customers,
			Columns: append([]models.Column{
				primary(varchar("CustomerID", 5)),
				required(varchar("CompanyName", 40)),
			}, contactColumns()...),
		},
		{
			Name: Employees,
			Columns: []models.Column{
				primary(column("EmployeeID", "INTEGER")),
				required(varchar("LastName", 20)),
				required(varchar("FirstName", 10)),
				varchar("Title", 30),
				varchar("TitleOfCourtesy", 25),
				column("BirthDate", "DATE"),
				column("HireDate", "DATE"),
				varchar("Address", 60),
				varchar("City", 15),
				varchar("Region", 15),
				varchar("PostalCode", 10),
				varchar("Country", 15),
				varchar("HomePhone", 24),
				varchar("Extension", 4),
				column("Notes", "TEXT"),
				column("ReportsTo", "INTEGER"),
			},
			ForeignKeys: []models.ForeignKey{
				references(Employees, "ReportsTo", Employees, "EmployeeID"),
			},
		},
		{
			Name: Orders,
			Columns: []models.Column{
				primary(column("OrderID", "INTEGER")),
				varchar("CustomerID", 5),
				column("EmployeeID", "INTEGER"),
				column("OrderDate", "DATE"),
				column("RequiredDate", "DATE"),
				column("ShippedDate", "DATE"),
				column("ShipVia", "INTEGER"),
				column("Freight", "DECIMAL(10,4)"),
				varchar("ShipName", 40),
				varchar("ShipAddress", 60),
				varchar("ShipCity", 15),
				varchar("ShipRegion", 15),
				varchar("ShipPostalCode", 10),
				varchar("ShipCountry", 15),
			},
			ForeignKeys: []models.ForeignKey{
				references(Orders, "CustomerID", Customers, "CustomerID"),
				references(Orders, "EmployeeID", Employees, "EmployeeID"),
			},
		},
		{
			Name: OrderDetails,
			Columns: []models.Column{
				primary(column("OrderID", "INTEGER")),
				primary(column("ProductID", "INTEGER")),
				required(column("UnitPrice", "DECIMAL(10,4)")),
				required(column("Quantity", "SMALLINT")),
				required(column("Discount", "REAL")),
			},
			ForeignKeys: []models.ForeignKey{
				references(OrderDetails, "OrderID", Orders, "OrderID"),
				references(OrderDetails, "ProductID", Products, "ProductID"),
			},
		},
	}
}

// contactColumns are shared by Suppliers and Customers
func contactColumns() []models.Column {
	return []models.Column{
		varchar("ContactName", 30),
		varchar("ContactTitle", 30),
		varchar("Address", 60),
		varchar("City", 15),
		varchar("Region", 15),
		varchar("PostalCode", 10),
		varchar("Country", 15),
		varchar("Phone", 24),
		varchar("Fax", 24),
	}
}

func column(name, dataType string) models.Column {
	return models.Column{Name: name, DataType: dataType}
}

func varchar(name string, length int) models.Column {
	return models.Column{Name: name, DataType: "VARCHAR", MaxLength: length}
}

func primary(col models.Column) models.Column {
	col.PrimaryKey = true
	return col
}

func required(col models.Column) models.Column {
	col.NotNull = true
	return col
}

func references(table, col, refTable, refCol string) models.ForeignKey {
	return models.ForeignKey{
		Table:            table,
		Column:           col,
		ReferencedTable:  refTable,
		ReferencedColumn: refCol,
	}
}
