package i18n

import "github.com/snaki-next/internal/constants"

var messages = map[string]map[string]string{
	constants.LocaleFrFR: {
		"error.bad_request":                      "Requête invalide",
		"error.not_found":                        "Ressource introuvable",
		"error.internal_error":                   "Erreur interne du serveur",
		"error.too_many_requests":                "Trop de requêtes, veuillez réessayer plus tard",
		"error.product_not_found":                "Produit introuvable",
		"error.product_fetch_failed":             "Impossible de charger les produits",
		"error.category_fetch_failed":            "Impossible de charger les catégories",
		"error.option_selection_invalid":         "Sélection d'options invalide",
		"error.quantity_invalid":                 "Quantité invalide",
		"error.cart_line_not_found":              "Article introuvable dans le panier",
		"error.cart_persist_failed":              "Impossible d'enregistrer le panier",
		"error.cart_fetch_failed":                "Impossible de charger le panier",
		"error.cart_empty":                       "Panier vide",
		"error.checkout_validation":              "Champs manquants",
		"error.checkout_step_invalid":            "Étape de commande invalide",
		"error.payment_invalid":                  "Données de paiement invalides",
		"error.payment_disabled":                 "Le paiement en ligne est désactivé",
		"error.payment_gateway_request_failed":   "Erreur lors de l'initialisation du paiement",
		"error.payment_gateway_response_invalid": "Réponse de paiement invalide",
		"error.payment_gateway_unavailable":      "Service de paiement temporairement indisponible",
		"error.captcha_required":                 "Veuillez compléter la vérification",
		"error.captcha_invalid":                  "Code de vérification invalide",
		"error.captcha_config_invalid":           "Configuration de vérification invalide",
		"error.queue_unavailable":                "Service de file d'attente indisponible",
		"cart.product_added.title":               "Produit ajouté",
		"cart.product_added.description":         "%s a été ajouté au panier",
		"cart.product_removed.title":             "Produit retiré",
		"cart.product_removed.description":       "Le produit a été retiré du panier",
		"cart.cleared.title":                     "Panier vidé",
		"cart.cleared.description":               "Tous les produits ont été retirés du panier",
		"checkout.missing_fields.title":          "Champs manquants",
		"checkout.missing_fields.description":    "Veuillez remplir tous les champs obligatoires",
		"checkout.whatsapp_opened":               "Commande prête à être envoyée sur WhatsApp",
		"checkout.step_personal.description":     "Veuillez remplir tous les champs personnels et votre numéro WhatsApp.",
		"checkout.step_delivery.description":     "Veuillez remplir tous les champs d'adresse et les détails de livraison.",
		"cart.quantity_updated.title":            "Quantité mise à jour",
		"cart.quantity_updated.description":      "La quantité de %s a été mise à jour",
		"error.cart_session_invalid":             "Session de panier invalide",
		"error.product_not_available":            "Produit indisponible",
		"error.captcha_unavailable":              "Vérification indisponible",
		"error.captcha_generate_failed":          "Impossible de générer le code de vérification",
		"error.config_fetch_failed":              "Impossible de charger la configuration",
		"error.payment_callback_failed":          "Impossible de vérifier le paiement",
		"error.checkout_submit_failed":           "Impossible d'envoyer la commande",
		"error.rate_limited":                     "Trop de requêtes, réessayez dans %d secondes",
		"error.rate_limit_unavailable":           "Limitation de débit indisponible",
		"error.checkout_too_many":                "Trop de commandes envoyées, réessayez dans %d secondes",
		"payment.created":                        "Paiement créé avec succès",
		"payment.confirmed":                      "Paiement confirmé et commande envoyée",
	},
	constants.LocaleEnUS: {
		"error.bad_request":                      "Bad request",
		"error.not_found":                        "Resource not found",
		"error.internal_error":                   "Internal server error",
		"error.too_many_requests":                "Too many requests, please try again later",
		"error.product_not_found":                "Product not found",
		"error.product_fetch_failed":             "Failed to load products",
		"error.category_fetch_failed":            "Failed to load categories",
		"error.option_selection_invalid":         "Invalid option selection",
		"error.quantity_invalid":                 "Invalid quantity",
		"error.cart_line_not_found":              "Cart line not found",
		"error.cart_persist_failed":              "Failed to save the cart",
		"error.cart_fetch_failed":                "Failed to load the cart",
		"error.cart_empty":                       "Cart is empty",
		"error.checkout_validation":              "Missing fields",
		"error.checkout_step_invalid":            "Invalid checkout step",
		"error.payment_invalid":                  "Invalid payment data",
		"error.payment_disabled":                 "Online payment is disabled",
		"error.payment_gateway_request_failed":   "Payment initialization failed",
		"error.payment_gateway_response_invalid": "Invalid payment response",
		"error.payment_gateway_unavailable":      "Payment service temporarily unavailable",
		"error.captcha_required":                 "Please complete the verification",
		"error.captcha_invalid":                  "Invalid verification code",
		"error.captcha_config_invalid":           "Invalid verification configuration",
		"error.queue_unavailable":                "Queue service unavailable",
		"cart.product_added.title":               "Product added",
		"cart.product_added.description":         "%s was added to the cart",
		"cart.product_removed.title":             "Product removed",
		"cart.product_removed.description":       "The product was removed from the cart",
		"cart.cleared.title":                     "Cart cleared",
		"cart.cleared.description":               "All products were removed from the cart",
		"checkout.missing_fields.title":          "Missing fields",
		"checkout.missing_fields.description":    "Please fill in all required fields",
		"checkout.whatsapp_opened":               "Order ready to be sent on WhatsApp",
		"checkout.step_personal.description":     "Please fill in all personal fields and your WhatsApp number.",
		"checkout.step_delivery.description":     "Please fill in all address fields and the delivery details.",
		"cart.quantity_updated.title":            "Quantity updated",
		"cart.quantity_updated.description":      "The quantity of %s was updated",
		"error.cart_session_invalid":             "Invalid cart session",
		"error.product_not_available":            "Product unavailable",
		"error.captcha_unavailable":              "Verification unavailable",
		"error.captcha_generate_failed":          "Failed to generate verification code",
		"error.config_fetch_failed":              "Failed to load configuration",
		"error.payment_callback_failed":          "Failed to verify the payment",
		"error.checkout_submit_failed":           "Failed to submit the order",
		"error.rate_limited":                     "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":           "Rate limiting unavailable",
		"error.checkout_too_many":                "Too many orders submitted, retry in %d seconds",
		"payment.created":                        "Payment created successfully",
		"payment.confirmed":                      "Payment confirmed and order sent",
	},
}
