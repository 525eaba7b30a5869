package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"parampara-storefront/configs"
	"parampara-storefront/internal/apiclient"
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/navigation"
	"parampara-storefront/internal/store"
	"parampara-storefront/pkg/database"
	"parampara-storefront/pkg/storage"

	"gorm.io/gorm/logger"
)

const help = `commands:
  foods [categoryId]          list products
  categories                  list categories
  category <id>               open a category page
  search <text>               search products
  suggest <text>              search suggestions
  view <foodId>               open a product page
  add <foodId>                add one unit to the cart
  remove <foodId>             remove a product from the cart
  qty <foodId> <n>            set a cart quantity
  cart                        show the cart
  clear                       empty the cart
  login <email> <password>
  register <email> <password> [full name]
  otp-send <phone>
  otp-verify <phone> <code>
  logout
  wishlist                    show the wishlist
  wish <foodId> / unwish <foodId>
  order <address>             place an order for the cart
  orders                      show order history
  track <orderId>             show one order
  set-status <orderId> <status> [notes]   admin: move an order along
  reviews <foodId>            show product reviews
  review <foodId> <1-5> [comment]
  page <name|path>            navigate
  whoami
  quit`

type shell struct {
	store        *store.Store
	client       *apiclient.Client
	timeout      time.Duration
	phoneSession string
}

func main() {
	config := configs.LoadConfig()

	backend, closeBackend, err := openStorage(config)
	if err != nil {
		log.Fatal("Failed to open storage:", err)
	}
	defer closeBackend()

	timeout := time.Duration(config.Client.TimeoutSeconds) * time.Second
	client := apiclient.New(config.Client.APIBaseURL, apiclient.WithTimeout(timeout))
	s := store.New(client, backend)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	if err := s.Restore(ctx); err != nil {
		log.Printf("Failed to restore state: %v", err)
	}
	cancel()

	sh := &shell{store: s, client: client, timeout: timeout}
	sh.run()
}

// openStorage picks the durable backend for cart, wishlist and token.
func openStorage(config *configs.Config) (storage.Storage, func(), error) {
	cfg := config.Client
	switch cfg.StorageBackend {
	case configs.StorageRedis:
		client, err := storage.ConnectRedis(context.Background(), config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		rs := storage.NewRedisStorage(client, cfg.Namespace)
		return rs, func() { rs.Close() }, nil
	case configs.StorageSQLite:
		db, err := database.NewDatabase(database.DriverSQLite, cfg.StoragePath, logger.Silent)
		if err != nil {
			return nil, nil, err
		}
		ss, err := storage.NewSQLStorage(db.DB, cfg.Namespace)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return ss, func() { db.Close() }, nil
	case configs.StorageMemory, "":
		return storage.NewMemoryStorage(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (sh *shell) run() {
	fmt.Println("Parampara Foods storefront. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", sh.store.Navigation().CurrentPage)
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), sh.timeout)
		if err := sh.exec(ctx, fields[0], fields[1:]); err != nil {
			fmt.Println("error:", err)
		}
		cancel()

		if msg := sh.store.Error(); msg != "" {
			fmt.Println("!", msg)
			sh.store.ClearError()
		}
	}
}

func (sh *shell) exec(ctx context.Context, cmd string, args []string) error {
	s := sh.store
	switch cmd {
	case "help":
		fmt.Println(help)
	case "foods":
		categoryID := 0
		if len(args) > 0 {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			categoryID = id
		}
		if err := s.LoadFoods(ctx, categoryID); err != nil {
			return err
		}
		for _, f := range s.Foods() {
			printFood(f.FoodID, f.Name, f.EffectivePrice(), f.MRP, f.IsOnSale)
		}
	case "categories":
		if err := s.LoadCategories(ctx); err != nil {
			return err
		}
		for _, c := range s.Categories() {
			fmt.Printf("%4d  %s\n", c.CategoryID, c.Name)
		}
	case "category":
		if len(args) != 1 {
			return fmt.Errorf("usage: category <id>")
		}
		if err := s.ViewCategory(ctx, args[0]); err != nil {
			return err
		}
		for _, f := range s.Foods() {
			printFood(f.FoodID, f.Name, f.EffectivePrice(), f.MRP, f.IsOnSale)
		}
	case "search":
		if err := s.PerformSearch(ctx, strings.Join(args, " ")); err != nil {
			return err
		}
		for _, f := range s.Navigation().SearchResults {
			printFood(f.FoodID, f.Name, f.EffectivePrice(), f.MRP, f.IsOnSale)
		}
	case "suggest":
		names, err := s.Suggestions(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(names, ", "))
	case "view":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		if err := s.ViewProduct(ctx, id); err != nil {
			return err
		}
		if p := s.Navigation().SelectedProduct; p != nil {
			fmt.Printf("%s (%s)\n  %s\n  ₹%.2f", p.Name, p.CategoryName, p.Description, p.EffectivePrice())
			if p.IsOnSale {
				fmt.Printf("  (MRP ₹%.2f, save ₹%.2f)", p.MRP, p.Savings)
			}
			fmt.Printf("\n  %s\n", s.Navigation().Path)
		}
	case "add":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		food, ok := sh.findFood(ctx, id)
		if !ok {
			return fmt.Errorf("product %d not found; run 'foods' first", id)
		}
		s.AddToCart(food)
		fmt.Printf("cart: %d items, ₹%.2f\n", s.CartCount(), s.CartTotal())
	case "remove":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		s.RemoveFromCart(id)
	case "qty":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		n, err := intArg(args, 1)
		if err != nil {
			return err
		}
		if !s.UpdateQuantity(id, n) {
			return fmt.Errorf("product %d is not in the cart", id)
		}
	case "cart":
		sh.printCart()
	case "clear":
		s.ClearCart()
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		if err := s.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("signed in as", s.Session().Email)
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: register <email> <password> [full name]")
		}
		in := store.RegisterInput{Email: args[0], Password: args[1], FullName: strings.Join(args[2:], " ")}
		if err := s.Register(ctx, in); err != nil {
			return err
		}
		fmt.Println("registered and signed in as", s.Session().Email)
	case "otp-send":
		if len(args) != 1 {
			return fmt.Errorf("usage: otp-send <phone>")
		}
		sessionID, err := s.SendPhoneVerificationCode(ctx, args[0])
		if err != nil {
			return err
		}
		sh.phoneSession = sessionID
		fmt.Println("code sent")
	case "otp-verify":
		if len(args) != 2 {
			return fmt.Errorf("usage: otp-verify <phone> <code>")
		}
		if err := s.VerifyPhoneCode(ctx, args[0], args[1], sh.phoneSession); err != nil {
			return err
		}
		sh.phoneSession = ""
		fmt.Println("signed in as", s.Session().Name)
	case "logout":
		s.Logout()
	case "whoami":
		session := s.Session()
		if !session.IsAuthenticated {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s> role=%s\n", session.Name, session.Email, session.Role)
	case "wishlist":
		if err := s.LoadWishlist(ctx); err != nil {
			return err
		}
		for _, w := range s.Wishlist() {
			printFood(w.ProductID, w.Product.Name, w.Product.EffectivePrice(), w.Product.MRP, w.Product.IsOnSale)
		}
	case "wish":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		food, ok := sh.findFood(ctx, id)
		if !ok {
			return fmt.Errorf("product %d not found; run 'foods' first", id)
		}
		return s.AddToWishlist(ctx, food)
	case "unwish":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		return s.RemoveFromWishlist(ctx, id)
	case "order":
		order, err := s.PlaceOrder(ctx, strings.Join(args, " "), "")
		if err != nil {
			return err
		}
		fmt.Printf("order #%d placed: ₹%.2f (%s)\n", order.OrderID, order.TotalAmount, order.Status)
	case "orders":
		if err := s.LoadOrders(ctx); err != nil {
			return err
		}
		for _, o := range s.Orders() {
			fmt.Printf("#%-5d %s  %-10s ₹%.2f  %d items\n", o.OrderID, o.OrderDate.Format("2006-01-02"), o.Status, o.TotalAmount, len(o.OrderItems))
		}
	case "track":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		order, err := sh.client.GetOrder(ctx, id)
		if err != nil {
			return errors.New(apiclient.UserMessage(err))
		}
		printOrder(order)
	case "set-status":
		if !s.IsAdmin() {
			return errors.New("admin session required")
		}
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: set-status <orderId> <status> [notes]")
		}
		order, err := sh.client.UpdateOrderStatus(ctx, id, args[1], strings.Join(args[2:], " "))
		if err != nil {
			return errors.New(apiclient.UserMessage(err))
		}
		printOrder(order)
	case "reviews":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		reviews, err := s.LoadFeedback(ctx, id)
		if err != nil {
			return err
		}
		for _, r := range reviews {
			fmt.Printf("%d/5 %s: %s\n", r.Rating, r.UserName, r.Comment)
		}
	case "review":
		id, err := intArg(args, 0)
		if err != nil {
			return err
		}
		rating, err := intArg(args, 1)
		if err != nil {
			return err
		}
		_, err = s.SubmitReview(ctx, id, rating, strings.Join(args[2:], " "))
		return err
	case "page":
		if len(args) != 1 {
			return fmt.Errorf("usage: page <name|path>")
		}
		if strings.HasPrefix(args[0], "/") {
			s.RestoreFromPath(args[0])
			return nil
		}
		return s.SetPage(navigation.Page(args[0]))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// findFood looks in the loaded catalog, loading it once if needed.
func (sh *shell) findFood(ctx context.Context, id int) (food models.Food, ok bool) {
	lookup := func() bool {
		for _, f := range sh.store.Foods() {
			if f.FoodID == id {
				food = f
				return true
			}
		}
		return false
	}
	if lookup() {
		return food, true
	}
	if err := sh.store.LoadFoods(ctx, 0); err != nil {
		return food, false
	}
	return food, lookup()
}

func (sh *shell) printCart() {
	lines := sh.store.Cart()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, l := range lines {
		fmt.Printf("%4d  %-30s %3d x ₹%.2f\n", l.ProductID, l.Name, l.Quantity, l.UnitPrice)
	}
	bill := sh.store.BillSummary()
	fmt.Printf("subtotal ₹%.2f  shipping ₹%.2f  total ₹%.2f\n", bill.Subtotal, bill.Shipping, bill.Total)
	if bill.AmountToFreeShipping > 0 {
		fmt.Printf("add ₹%.2f more for free shipping\n", bill.AmountToFreeShipping)
	}
}

func printOrder(o *models.Order) {
	fmt.Printf("#%d %s  %s  ₹%.2f\n  to: %s\n", o.OrderID, o.OrderDate.Format("2006-01-02"), o.Status, o.TotalAmount, o.DeliveryAddress)
	for _, item := range o.OrderItems {
		fmt.Printf("  %3d x %-30s ₹%.2f\n", item.Quantity, item.FoodName, item.UnitPrice)
	}
}

func printFood(id int, name string, price, mrp float64, onSale bool) {
	if onSale {
		fmt.Printf("%4d  %-30s ₹%.2f (MRP ₹%.2f)\n", id, name, price, mrp)
		return
	}
	fmt.Printf("%4d  %-30s ₹%.2f\n", id, name, price)
}

func intArg(args []string, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i+1)
	}
	return strconv.Atoi(args[i])
}
