package assistant

var greetings = []string{
	"Hello! Welcome to our e-commerce store. How can I help you find the perfect product today?",
	"Hi there! I'm here to help you discover amazing products. What are you looking for?",
	"Hey! Ready to find something awesome? Tell me what you need and I'll help you search our catalog.",
	"Good day! I'm your shopping assistant. What product can I help you find today?",
}

var farewells = []string{
	"Thank you for shopping with us! Have a great day! 🛍️",
	"Goodbye! Hope you found what you were looking for. Come back anytime! 👋",
	"Thanks for visiting! Feel free to ask if you need anything else. See you soon! 😊",
	"Have a wonderful day! Happy shopping! 🎉",
}

const helpText = `I'm here to help you find products! Here's what I can do:

🔍 **Search for products**: Just tell me what you're looking for
   - "Show me laptops under $1000"
   - "I need running shoes"
   - "Find smartphones with good cameras"

💰 **Filter by price**: Set your budget
   - "Under $500"
   - "Between $100 and $300"

🏷️ **Filter by category or brand**: Be specific
   - "Apple products"
   - "Books by Stephen King"
   - "Nike shoes"

⭐ **Get recommendations**: Ask for suggestions
   - "What's popular?"
   - "Recommend something good"
   - "Show me top rated products"

Just ask me naturally, like you would ask a friend! What would you like to find?`

const noRecommendationText = "I'm sorry, I couldn't find any products to recommend at the moment. Please try searching for specific items!"
