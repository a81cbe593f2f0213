package i18n

var messages = map[string]map[string]string{
	LocalePTBR: {
		"error.bad_request":              "Requisição inválida",
		"error.unauthorized":             "Não autenticado",
		"error.forbidden":                "Sem permissão para esta ação",
		"error.not_found":                "Recurso não encontrado",
		"error.internal":                 "Erro interno, tente novamente",
		"error.too_many_requests":        "Muitas requisições, tente novamente em %d segundos",
		"error.login_too_many":           "Muitas tentativas de login, tente novamente em %d segundos",
		"error.token_invalid":            "Sessão expirada, faça login novamente",
		"error.product_not_available":    "Produto indisponível",
		"error.product_not_found":        "Produto não encontrado",
		"error.product_slug_exists":      "Já existe um produto com este slug",
		"error.product_invalid":          "Dados do produto inválidos",
		"error.product_price_invalid":    "Preço do produto inválido",
		"error.product_fetch_failed":     "Falha ao carregar produtos",
		"error.product_save_failed":      "Falha ao salvar o produto",
		"error.product_delete_failed":    "Falha ao excluir o produto",
		"error.product_id_invalid":       "ID de produto inválido",
		"error.cart_key_invalid":         "Item do carrinho inválido",
		"error.cart_empty":               "Seu carrinho está vazio",
		"error.checkout_unavailable":     "Pagamento indisponível no momento",
		"error.checkout_failed":          "Não foi possível iniciar o pagamento",
		"error.checkout_session_invalid": "Sessão de pagamento inválida",
		"error.payment_not_completed":    "O pagamento ainda não foi concluído",
		"error.order_record_failed":      "Pagamento confirmado, mas o pedido não foi registrado",
		"error.order_not_found":          "Pedido não encontrado",
		"error.order_fetch_failed":       "Falha ao carregar pedidos",
		"error.order_id_invalid":         "ID de pedido inválido",
		"error.admin_login_invalid":      "Usuário ou senha incorretos",
		"error.login_failed":             "Falha no login",
		"error.captcha_required":         "Informe o código de verificação",
		"error.captcha_invalid":          "Código de verificação incorreto",
		"error.captcha_generate_failed":  "Falha ao gerar o código de verificação",
		"error.admin_username_invalid":   "Nome de usuário inválido",
		"error.admin_username_exists":    "Nome de usuário já cadastrado",
		"error.admin_id_invalid":         "ID de administrador inválido",
		"error.admin_not_found":          "Administrador não encontrado",
		"error.admin_create_failed":      "Falha ao criar administrador",
		"error.admin_fetch_failed":       "Falha ao carregar administradores",
		"error.role_invalid":             "Função inválida",
		"error.role_fetch_failed":        "Falha ao carregar funções",
		"error.super_admin_roles":        "As funções do superadministrador não podem ser alteradas",
		"error.password_weak":            "Senha fraca",
		"error.password_min_length":      "A senha deve ter pelo menos %d caracteres",
		"error.password_require_upper":   "A senha deve conter uma letra maiúscula",
		"error.password_require_lower":   "A senha deve conter uma letra minúscula",
		"error.password_require_number":  "A senha deve conter um número",
		"error.password_require_special": "A senha deve conter um caractere especial",
		"error.password_old_invalid":     "Senha atual incorreta",
		"error.password_update_failed":   "Falha ao alterar a senha",
		"error.email_invalid":            "E-mail inválido",
		"error.email_exists":             "E-mail já cadastrado",
		"error.profile_invalid":          "Nome ou sobrenome inválido",
		"error.user_login_invalid":       "E-mail ou senha incorretos",
		"error.user_not_found":           "Usuário não encontrado",
		"error.register_failed":          "Falha ao criar a conta",
		"error.favorite_fetch_failed":    "Falha ao carregar favoritos",
		"error.favorite_save_failed":     "Falha ao salvar favorito",
	},
	LocaleEN: {
		"error.bad_request":              "Invalid request",
		"error.unauthorized":             "Not authenticated",
		"error.forbidden":                "You are not allowed to do this",
		"error.not_found":                "Resource not found",
		"error.internal":                 "Internal error, please try again",
		"error.too_many_requests":        "Too many requests, retry in %d seconds",
		"error.login_too_many":           "Too many login attempts, retry in %d seconds",
		"error.token_invalid":            "Session expired, please sign in again",
		"error.product_not_available":    "Product not available",
		"error.product_not_found":        "Product not found",
		"error.product_slug_exists":      "A product with this slug already exists",
		"error.product_invalid":          "Invalid product data",
		"error.product_price_invalid":    "Invalid product price",
		"error.product_fetch_failed":     "Failed to load products",
		"error.product_save_failed":      "Failed to save product",
		"error.product_delete_failed":    "Failed to delete product",
		"error.product_id_invalid":       "Invalid product ID",
		"error.cart_key_invalid":         "Invalid cart item",
		"error.cart_empty":               "Your cart is empty",
		"error.checkout_unavailable":     "Checkout is currently unavailable",
		"error.checkout_failed":          "Could not start checkout",
		"error.checkout_session_invalid": "Invalid checkout session",
		"error.payment_not_completed":    "Payment has not been completed yet",
		"error.order_record_failed":      "Payment confirmed but the order could not be recorded",
		"error.order_not_found":          "Order not found",
		"error.order_fetch_failed":       "Failed to load orders",
		"error.order_id_invalid":         "Invalid order ID",
		"error.admin_login_invalid":      "Incorrect username or password",
		"error.login_failed":             "Login failed",
		"error.captcha_required":         "Verification code is required",
		"error.captcha_invalid":          "Incorrect verification code",
		"error.captcha_generate_failed":  "Failed to generate verification code",
		"error.admin_username_invalid":   "Invalid username",
		"error.admin_username_exists":    "Username already taken",
		"error.admin_id_invalid":         "Invalid admin ID",
		"error.admin_not_found":          "Admin not found",
		"error.admin_create_failed":      "Failed to create admin",
		"error.admin_fetch_failed":       "Failed to load admins",
		"error.role_invalid":             "Invalid role",
		"error.role_fetch_failed":        "Failed to load roles",
		"error.super_admin_roles":        "Super admin roles cannot be changed",
		"error.password_weak":            "Weak password",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a number",
		"error.password_require_special": "Password must contain a special character",
		"error.password_old_invalid":     "Current password is incorrect",
		"error.password_update_failed":   "Failed to change password",
		"error.email_invalid":            "Invalid email address",
		"error.email_exists":             "Email is already registered",
		"error.profile_invalid":          "Invalid first or last name",
		"error.user_login_invalid":       "Incorrect email or password",
		"error.user_not_found":           "User not found",
		"error.register_failed":          "Failed to create account",
		"error.favorite_fetch_failed":    "Failed to load favorites",
		"error.favorite_save_failed":     "Failed to save favorite",
	},
}
