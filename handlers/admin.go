package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/voguemanic/voguemanic-backend/database"
	"github.com/voguemanic/voguemanic-backend/models"
	"github.com/voguemanic/voguemanic-backend/realtime"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderSale is one row of the per-order sales report.
type OrderSale struct {
	OrderID   string `json:"orderId"`
	TotalCost string `json:"totalCost"`
}

// TotalItemsSold counts line-item entries across all orders. A line item
// carries no quantity, so each entry counts once.
func TotalItemsSold(orders []models.Order) int {
	total := 0
	for _, order := range orders {
		total += len(order.Items)
	}
	return total
}

func orderSaleTotal(order models.Order) float64 {
	total := 0.0
	for _, item := range order.Items {
		total += item.Price + item.ShippingCost
	}
	return total
}

// TotalSaleAllOrders sums price plus shipping over every item of every
// order, formatted to two decimals.
func TotalSaleAllOrders(orders []models.Order) string {
	total := 0.0
	for _, order := range orders {
		total += orderSaleTotal(order)
	}
	return strconv.FormatFloat(total, 'f', 2, 64)
}

// TotalSalePerOrder is the same computation broken out per order.
func TotalSalePerOrder(orders []models.Order) []OrderSale {
	sales := make([]OrderSale, 0, len(orders))
	for _, order := range orders {
		sales = append(sales, OrderSale{
			OrderID:   order.OrderID,
			TotalCost: strconv.FormatFloat(orderSaleTotal(order), 'f', 2, 64),
		})
	}
	return sales
}

func loadAllOrders(ctx context.Context) ([]models.Order, error) {
	cursor, err := database.DB.Collection(database.ConfirmedOrders).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func GetTotalOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.DB.Collection(database.ConfirmedOrders).CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to count orders"})
	}

	return c.JSON(http.StatusOK, map[string]int64{"totalOrders": count})
}

func GetTotalItemsSold(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := loadAllOrders(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, map[string]int{"totalItemsSold": TotalItemsSold(orders)})
}

func GetTotalSales(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := loadAllOrders(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, map[string]string{"totalSale": TotalSaleAllOrders(orders)})
}

func GetSalesPerOrder(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := loadAllOrders(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, TotalSalePerOrder(orders))
}

// UpdateOrderStatus is the ops-only transition (Placed -> Shipped ->
// Delivered). Moves outside the transition table are rejected; customer
// cancellation has its own endpoint.
func UpdateOrderStatus(c echo.Context) error {
	orderID := c.Param("orderId")

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := database.DB.Collection(database.ConfirmedOrders).FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch order"})
	}

	if !models.CanTransition(order.Status, req.Status) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status transition"})
	}

	_, err = database.DB.Collection(database.ConfirmedOrders).UpdateOne(
		ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update order"})
	}

	if Sockets != nil {
		Sockets.Publish(order.UserEmail, realtime.Event{
			Type:    "order.status",
			OrderID: order.OrderID,
			Status:  string(req.Status),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Order status updated"})
}

// ----- Employees -----

func GetEmployees(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection(database.Employees).Find(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch employees"})
	}
	defer cursor.Close(ctx)

	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch employees"})
	}

	return c.JSON(http.StatusOK, employees)
}

func AddEmployee(c echo.Context) error {
	var employee models.Employee
	if err := c.Bind(&employee); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if employee.Email == "" || employee.EmployeeID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and employeeId are required"})
	}

	collection := database.DB.Collection(database.Employees)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	duplicate := collection.FindOne(ctx, bson.M{"$or": []bson.M{
		{"email": employee.Email},
		{"employeeId": employee.EmployeeID},
	}})
	if duplicate.Err() == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Employee with that email or id already exists"})
	}
	if duplicate.Err() != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check employees"})
	}

	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = time.Now()

	if _, err := collection.InsertOne(ctx, employee); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add employee"})
	}

	return c.JSON(http.StatusCreated, employee)
}

func DeleteEmployee(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.Employees).DeleteOne(ctx, bson.M{"employeeId": c.Param("id")})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete employee"})
	}

	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Employee not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Employee deleted"})
}
