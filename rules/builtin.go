package rules

// builtinRules binds every rule in the package under the names used by the
// class exercise suite.
func builtinRules() []*Rule {
	return []*Rule{
		{
			Name:   "check_number_status",
			Doc:    "Positive, Negative or Zero",
			Params: []Param{{"number", KindFloat}},
			eval: func(a *argReader) (any, error) {
				n := a.Float("number")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return NumberStatus(n), nil
			},
		},
		{
			Name:   "validate_password",
			Doc:    "length ≥ 8 with upper, lower, digit and one of " + PasswordSpecials,
			Params: []Param{{"password", KindString}},
			eval: func(a *argReader) (any, error) {
				p := a.String("password")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return ValidatePassword(p), nil
			},
		},
		{
			Name:   "calculate_total_discount",
			Doc:    "0 below 100, 10% up to 500, 20% above",
			Params: []Param{{"amount", KindFloat}},
			eval: func(a *argReader) (any, error) {
				amount := a.Float("amount")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return TotalDiscount(amount), nil
			},
		},
		{
			Name:   "calculate_order_total",
			Doc:    "sum of price × quantity with 5%/10% quantity discounts",
			Params: []Param{{"items", KindOrderItems}},
			eval: func(a *argReader) (any, error) {
				items := a.OrderItems("items")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return OrderTotal(items), nil
			},
		},
		{
			Name:   "calculate_items_shipping_cost",
			Doc:    "per-parcel standard/express rates by weight band",
			Params: []Param{{"items", KindParcels}, {"method", KindString}},
			eval: func(a *argReader) (any, error) {
				parcels := a.Parcels("items")
				method := a.String("method")
				if err := a.Err(); err != nil {
					return nil, err
				}
				cost, err := ItemsShippingCost(parcels, ShippingMethod(method))
				if err != nil {
					return nil, err
				}
				return cost, nil
			},
		},
		{
			Name:   "validate_login",
			Doc:    "username 5–20 and password 8–15 characters",
			Params: []Param{{"username", KindString}, {"password", KindString}},
			eval: func(a *argReader) (any, error) {
				u, p := a.String("username"), a.String("password")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return ValidateLogin(u, p), nil
			},
		},
		{
			Name:   "verify_age",
			Doc:    "Eligible from 18 to 65",
			Params: []Param{{"age", KindInt}},
			eval: func(a *argReader) (any, error) {
				age := a.Int("age")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return VerifyAge(age), nil
			},
		},
		{
			Name:   "categorize_product",
			Doc:    "Category A–D by price band",
			Params: []Param{{"price", KindInt}},
			eval: func(a *argReader) (any, error) {
				price := a.Int("price")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return CategorizeProduct(price), nil
			},
		},
		{
			Name:   "validate_email",
			Doc:    "5–50 characters containing @ and .",
			Params: []Param{{"email", KindString}},
			eval: func(a *argReader) (any, error) {
				email := a.String("email")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return ValidateEmail(email), nil
			},
		},
		{
			Name:   "celsius_to_fahrenheit",
			Doc:    "°C × 9/5 + 32 for -100..100, else Invalid Temperature",
			Params: []Param{{"celsius", KindInt}},
			eval: func(a *argReader) (any, error) {
				c := a.Int("celsius")
				if err := a.Err(); err != nil {
					return nil, err
				}
				if f, ok := CelsiusToFahrenheit(c); ok {
					return f, nil
				}
				return InvalidTemperature, nil
			},
		},
		{
			Name:   "validate_credit_card",
			Doc:    "13–16 digits",
			Params: []Param{{"card_number", KindString}},
			eval: func(a *argReader) (any, error) {
				n := a.String("card_number")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return ValidateCreditCard(n), nil
			},
		},
		{
			Name:   "validate_date",
			Doc:    "year 1900–2100, month 1–12, day 1–31",
			Params: []Param{{"year", KindInt}, {"month", KindInt}, {"day", KindInt}},
			eval: func(a *argReader) (any, error) {
				y, m, d := a.Int("year"), a.Int("month"), a.Int("day")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return ValidateDate(y, m, d), nil
			},
		},
		{
			Name:   "check_flight_eligibility",
			Doc:    "frequent flyers, or ages 18–65",
			Params: []Param{{"age", KindInt}, {"frequent_flyer", KindBool}},
			eval: func(a *argReader) (any, error) {
				age, ff := a.Int("age"), a.Bool("frequent_flyer")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return CheckFlightEligibility(age, ff), nil
			},
		},
		{
			Name:   "validate_url",
			Doc:    "http:// or https://, at most 255 characters",
			Params: []Param{{"url", KindString}},
			eval: func(a *argReader) (any, error) {
				u := a.String("url")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return ValidateURL(u), nil
			},
		},
		{
			Name:   "calculate_quantity_discount",
			Doc:    "No Discount 1–5, 5% 6–10, 10% above",
			Params: []Param{{"quantity", KindInt}},
			eval: func(a *argReader) (any, error) {
				q := a.Int("quantity")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return QuantityDiscount(q), nil
			},
		},
		{
			Name:   "check_file_size",
			Doc:    "0 to 1048576 bytes",
			Params: []Param{{"size", KindInt}},
			eval: func(a *argReader) (any, error) {
				size := a.Int64("size")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return CheckFileSize(size), nil
			},
		},
		{
			Name:   "check_loan_eligibility",
			Doc:    "loan product by income and credit score",
			Params: []Param{{"income", KindFloat}, {"credit_score", KindInt}},
			eval: func(a *argReader) (any, error) {
				income, score := a.Float("income"), a.Int("credit_score")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return CheckLoanEligibility(income, score), nil
			},
		},
		{
			Name: "calculate_shipping_cost",
			Doc:  "5 up to 1, 10 up to 5, 20 above, by weight",
			Params: []Param{
				{"weight", KindFloat}, {"length", KindFloat}, {"width", KindFloat}, {"height", KindFloat},
			},
			eval: func(a *argReader) (any, error) {
				w, l := a.Float("weight"), a.Float("length")
				wd, h := a.Float("width"), a.Float("height")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return ShippingCost(w, l, wd, h), nil
			},
		},
		{
			Name:   "grade_quiz",
			Doc:    "Pass, Conditional Pass or Fail",
			Params: []Param{{"correct", KindInt}, {"incorrect", KindInt}},
			eval: func(a *argReader) (any, error) {
				c, i := a.Int("correct"), a.Int("incorrect")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return GradeQuiz(c, i), nil
			},
		},
		{
			Name:   "authenticate_user",
			Doc:    "Admin, User or Invalid",
			Params: []Param{{"username", KindString}, {"password", KindString}},
			eval: func(a *argReader) (any, error) {
				u, p := a.String("username"), a.String("password")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return AuthenticateUser(u, p), nil
			},
		},
		{
			Name:   "get_weather_advisory",
			Doc:    "advisory by temperature and humidity",
			Params: []Param{{"temperature", KindFloat}, {"humidity", KindFloat}},
			eval: func(a *argReader) (any, error) {
				t, h := a.Float("temperature"), a.Float("humidity")
				if err := a.Err(); err != nil {
					return nil, err
				}
				return WeatherAdvisory(t, h), nil
			},
		},
	}
}
