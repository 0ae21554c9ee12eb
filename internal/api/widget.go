package api

// widgetHTML is the self-contained chat page served at /widget. It
// talks to /chat with sender "web_widget".
const widgetHTML = `<!DOCTYPE html>
<html lang="fr">
<head>
    <title>Iwacu Chat</title>
    <meta charset="utf-8">
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
        .chat-container { max-width: 600px; margin: 0 auto; background: white; border-radius: 10px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.1); }
        .chat-header { background: linear-gradient(135deg, #2c5aa0, #1e4080); color: white; padding: 20px; text-align: center; }
        .chat-header h1 { margin: 0; font-size: 1.5em; }
        .chat-header p { margin: 5px 0 0 0; opacity: 0.9; }
        .quick-buttons { padding: 15px; background: #f8f9fa; display: flex; flex-wrap: wrap; gap: 10px; }
        .quick-btn { background: #e9ecef; border: none; padding: 8px 15px; border-radius: 20px; cursor: pointer; font-size: 14px; }
        .quick-btn:hover { background: #2c5aa0; color: white; }
        .messages { height: 400px; overflow-y: auto; padding: 20px; }
        .message { margin: 10px 0; padding: 12px 18px; border-radius: 18px; max-width: 80%; }
        .user-message { background: #007bff; color: white; margin-left: auto; }
        .bot-message { background: #e9ecef; }
        .input-area { padding: 20px; border-top: 1px solid #eee; display: flex; gap: 10px; }
        .input-area input { flex: 1; padding: 12px; border: 1px solid #ddd; border-radius: 25px; font-size: 14px; }
        .input-area button { padding: 12px 24px; background: #2c5aa0; color: white; border: none; border-radius: 25px; cursor: pointer; }
        .input-area button:hover { background: #1e4080; }
    </style>
</head>
<body>
    <div class="chat-container">
        <div class="chat-header">
            <h1>🍽️ Iwacu Assistant</h1>
            <p>Bonjour ! Comment puis-je vous aider ?</p>
        </div>

        <div class="quick-buttons">
            <button class="quick-btn" onclick="sendQuick('Menu du jour')">📋 Menu</button>
            <button class="quick-btn" onclick="sendQuick('Horaires aujourd\'hui')">🕐 Horaires</button>
            <button class="quick-btn" onclick="sendQuick('Promotions actuelles')">🎉 Promos</button>
            <button class="quick-btn" onclick="sendQuick('Réservation')">📅 Réserver</button>
        </div>

        <div class="messages" id="messages">
            <div class="message bot-message">
                👋 Bienvenue chez Iwacu ! Je peux vous renseigner sur notre menu, horaires, promotions et réservations.
            </div>
        </div>

        <div class="input-area">
            <input type="text" id="messageInput" placeholder="Tapez votre message..." onkeypress="handleEnter(event)">
            <button onclick="sendMessage()">Envoyer</button>
        </div>
    </div>

    <script>
        async function sendMessage(text = null) {
            const input = document.getElementById('messageInput');
            const messageText = text || input.value.trim();

            if (!messageText) return;

            addMessage(messageText, 'user-message');
            input.value = '';

            try {
                const response = await fetch('/chat', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ text: messageText, sender: 'web_widget' })
                });

                const data = await response.json();
                addMessage(data.reply, 'bot-message');

            } catch (error) {
                addMessage('❌ Erreur de connexion. Veuillez réessayer.', 'bot-message');
            }
        }

        function addMessage(text, className) {
            const messages = document.getElementById('messages');
            const msg = document.createElement('div');
            msg.className = 'message ' + className;
            msg.innerHTML = text.replace(/\n/g, '<br>');
            messages.appendChild(msg);
            messages.scrollTop = messages.scrollHeight;
        }

        function sendQuick(message) {
            sendMessage(message);
        }

        function handleEnter(event) {
            if (event.key === 'Enter') {
                sendMessage();
            }
        }
    </script>
</body>
</html>`
