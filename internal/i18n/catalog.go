package i18n

// Messages for both languages, keyed by dotted path
var catalog = map[string]map[string]string{
	"en": {
		"errors.networkError":       "Network error. Please check your connection and try again.",
		"errors.unauthorized":       "Your session has expired. Please log in again.",
		"errors.forbidden":          "You do not have permission to perform this action.",
		"errors.unknownApiError":    "An unexpected server error occurred. Please try again later.",
		"errors.notFound":           "The requested record was not found.",
		"errors.invalidCredentials": "No active account found with the given credentials.",
		"errors.incorrectPassword":  "Incorrect current password.",
		"errors.phoneTaken":         "This phone number is already registered.",
		"errors.userNotFound":       "User not found.",
		"errors.cancelled":          "The action was cancelled.",
		"errors.validation":         "Please correct the highlighted fields.",
		"errors.invalidTransition":  "This invoice cannot move to the requested status.",

		"validation.addressRequired":     "Shipping address is required.",
		"validation.addressMinLength":    "Shipping address must be at least 10 characters.",
		"validation.addressInvalidChars": "Shipping address contains invalid characters.",
		"validation.fieldRequired":       "This field is required.",
		"validation.invalidValue":        "This value is not valid.",
		"validation.fillAllFields":       "Please fill all fields.",
		"validation.invalidPhone":        "Please enter a valid phone number.",
		"validation.passwordMinLength":   "Password must be at least 6 characters.",
		"validation.invalidEmail":        "Please enter a valid email address.",

		"invoice.status.Paid":                 "Paid",
		"invoice.status.Pending Payment":      "Pending Payment",
		"invoice.status.Pending Confirmation": "Pending Confirmation",
		"invoice.status.Overdue":              "Overdue",

		"notify.paymentRecorded": "Payment of {{amount}} recorded for invoice {{invoiceId}}.",
		"notify.invoiceIssued":   "Invoice {{invoiceId}} issued for {{customer}}.",
		"notify.invoiceStatus":   "Invoice {{invoiceId}} is now {{status}}.",
		"notify.clientAdded":     "Client {{name}} added.",
		"notify.clientUpdated":   "Client {{name}} updated.",
		"notify.clientDeleted":   "Client {{id}} deleted.",
		"notify.entryAppended":   "Ledger entry added for {{clientId}}.",
		"notify.settingsSaved":   "Settings saved.",
		"notify.passwordChanged": "Password changed successfully.",
		"notify.registered":      "Account created for {{name}}.",
		"confirm.deleteClient":   "Are you sure you want to delete client {{name}}?",

		"statement.title":          "Account Statement",
		"statement.date":           "Date",
		"statement.description":    "Description",
		"statement.debit":          "Debit",
		"statement.credit":         "Credit",
		"statement.balance":        "Balance",
		"statement.totalDebit":     "Total Debit",
		"statement.totalCredit":    "Total Credit",
		"statement.netBalance":     "Net Balance",
		"statement.noTransactions": "No transactions found.",
		"statement.client":         "Client",
		"statement.bank":           "Bank",
		"statement.iban":           "IBAN",

		"invoice.listTitle": "Invoices",
		"invoice.id":        "Invoice",
		"invoice.customer":  "Customer",
		"invoice.date":      "Date",
		"invoice.dueDate":   "Due Date",
		"invoice.subtotal":  "Subtotal",
		"invoice.shipping":  "Shipping",
		"invoice.tax":       "VAT (15%)",
		"invoice.total":     "Total",
		"invoice.status":    "Status",

		"invoice.share": "Invoice {{invoiceId}}\nCustomer: {{customer}}\nDate: {{date}}\nDue: {{dueDate}}\nSubtotal: {{subtotal}}\nShipping: {{shipping}}\nVAT (15%): {{tax}}\nTotal: {{total}}\nStatus: {{status}}",
	},
	"ar": {
		"errors.networkError":       "خطأ في الشبكة. يرجى التحقق من اتصالك والمحاولة مرة أخرى.",
		"errors.unauthorized":       "انتهت صلاحية الجلسة. يرجى تسجيل الدخول مرة أخرى.",
		"errors.forbidden":          "ليس لديك صلاحية للقيام بهذا الإجراء.",
		"errors.unknownApiError":    "حدث خطأ غير متوقع في الخادم. يرجى المحاولة لاحقاً.",
		"errors.notFound":           "السجل المطلوب غير موجود.",
		"errors.invalidCredentials": "لا يوجد حساب نشط بهذه البيانات.",
		"errors.incorrectPassword":  "كلمة المرور الحالية غير صحيحة.",
		"errors.phoneTaken":         "رقم الجوال هذا مسجل مسبقاً.",
		"errors.userNotFound":       "المستخدم غير موجود.",
		"errors.cancelled":          "تم إلغاء الإجراء.",
		"errors.validation":         "يرجى تصحيح الحقول المحددة.",
		"errors.invalidTransition":  "لا يمكن نقل الفاتورة إلى الحالة المطلوبة.",

		"validation.addressRequired":     "عنوان الشحن مطلوب.",
		"validation.addressMinLength":    "يجب أن يتكون عنوان الشحن من 10 أحرف على الأقل.",
		"validation.addressInvalidChars": "عنوان الشحن يحتوي على أحرف غير صالحة.",
		"validation.fieldRequired":       "هذا الحقل مطلوب.",
		"validation.invalidValue":        "هذه القيمة غير صالحة.",
		"validation.fillAllFields":       "يرجى تعبئة جميع الحقول.",
		"validation.invalidPhone":        "يرجى إدخال رقم جوال صحيح.",
		"validation.passwordMinLength":   "يجب أن تتكون كلمة المرور من 6 أحرف على الأقل.",
		"validation.invalidEmail":        "يرجى إدخال بريد إلكتروني صحيح.",

		"invoice.status.Paid":                 "مدفوع",
		"invoice.status.Pending Payment":      "بانتظار الدفع",
		"invoice.status.Pending Confirmation": "بانتظار التأكيد",
		"invoice.status.Overdue":              "متأخر",

		"notify.paymentRecorded": "تم تسجيل دفعة بقيمة {{amount}} للفاتورة {{invoiceId}}.",
		"notify.invoiceIssued":   "تم إصدار الفاتورة {{invoiceId}} للعميل {{customer}}.",
		"notify.invoiceStatus":   "حالة الفاتورة {{invoiceId}} الآن {{status}}.",
		"notify.clientAdded":     "تمت إضافة العميل {{name}}.",
		"notify.clientUpdated":   "تم تحديث العميل {{name}}.",
		"notify.clientDeleted":   "تم حذف العميل {{id}}.",
		"notify.entryAppended":   "تمت إضافة قيد للعميل {{clientId}}.",
		"notify.settingsSaved":   "تم حفظ الإعدادات.",
		"notify.passwordChanged": "تم تغيير كلمة المرور بنجاح.",
		"notify.registered":      "تم إنشاء حساب {{name}}.",
		"confirm.deleteClient":   "هل أنت متأكد من حذف العميل {{name}}؟",

		"statement.title":          "كشف حساب",
		"statement.date":           "التاريخ",
		"statement.description":    "البيان",
		"statement.debit":          "مدين",
		"statement.credit":         "دائن",
		"statement.balance":        "الرصيد",
		"statement.totalDebit":     "إجمالي المدين",
		"statement.totalCredit":    "إجمالي الدائن",
		"statement.netBalance":     "صافي الرصيد",
		"statement.noTransactions": "لا توجد حركات.",
		"statement.client":         "العميل",
		"statement.bank":           "البنك",
		"statement.iban":           "الآيبان",

		"invoice.listTitle": "الفواتير",
		"invoice.id":        "الفاتورة",
		"invoice.customer":  "العميل",
		"invoice.date":      "التاريخ",
		"invoice.dueDate":   "تاريخ الاستحقاق",
		"invoice.subtotal":  "المجموع الفرعي",
		"invoice.shipping":  "الشحن",
		"invoice.tax":       "ضريبة القيمة المضافة (15%)",
		"invoice.total":     "الإجمالي",
		"invoice.status":    "الحالة",

		"invoice.share": "فاتورة {{invoiceId}}\nالعميل: {{customer}}\nالتاريخ: {{date}}\nالاستحقاق: {{dueDate}}\nالمجموع الفرعي: {{subtotal}}\nالشحن: {{shipping}}\nضريبة القيمة المضافة (15%): {{tax}}\nالإجمالي: {{total}}\nالحالة: {{status}}",
	},
}
